package helper

import (
	"strings"
	"testing"
)

type nested struct {
	Inner string `errorTxt:"inner" mandatory:"yes"`
}

type validationTarget struct {
	Name     string            `errorTxt:"name" mandatory:"yes"`
	Optional string            `errorTxt:"optional"`
	Count    int               `errorTxt:"count" mandatory:"yes"`
	Tags     map[string]string `errorTxt:"tags" mandatory:"yes"`
	Nested   nested
	hidden   string
}

func TestValidateStructIsPopulated(t *testing.T) {
	// Test 1 - every mandatory field missing is reported.
	err := ValidateStructIsPopulated(&validationTarget{Name: "   "})
	if err == nil {
		t.Fatal("test 1: expected error for unset fields")
	}
	for _, s := range []string{"name", "count", "tags", "inner"} {
		if !strings.Contains(err.Error(), s) {
			t.Fatalf("test 1: expected %q in error; got %q", s, err.Error())
		}
	}
	if strings.Contains(err.Error(), "optional") {
		t.Fatalf("test 1: optional field reported as missing: %v", err)
	}
	// Test 2 - a fully populated struct passes.
	v := validationTarget{Name: "n", Count: 1, Tags: map[string]string{"a": "b"}, Nested: nested{Inner: "x"}}
	if err := ValidateStructIsPopulated(v); err != nil {
		t.Fatalf("test 2: expected nil error; got %v", err)
	}
}
