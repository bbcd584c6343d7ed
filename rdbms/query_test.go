package rdbms

import "testing"

func TestPrepareQueryText(t *testing.T) {
	got := PrepareQueryText("SELECT a\n FROM t\nWHERE x = 1\n")
	expected := "SELECT a FROM tWHERE x = 1"
	if got != expected {
		t.Fatalf("expected %q; got %q", expected, got)
	}
}

func TestRowCounter(t *testing.T) {
	c := &RowCounter{}
	if err := c.HandleHeader([]interface{}{"A", "B"}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := c.HandleRow([]interface{}{i, i}); err != nil {
			t.Fatal(err)
		}
	}
	if c.Rows != 3 || len(c.Header) != 2 || c.Header[1] != "B" {
		t.Fatalf("unexpected counter %+v", c)
	}
}
