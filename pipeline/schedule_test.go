package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestCronExpression(t *testing.T) {
	cases := []struct {
		cron     Cron
		expected string
	}{
		{HourlyAt("39"), "cron(39 * * * ? *)"},
		{Cron{Minute: "0", Hour: "12"}, "cron(0 12 * * ? *)"},
		{Cron{Minute: "15", WeekDay: "MON"}, "cron(15 * ? * MON *)"},
	}
	for _, c := range cases {
		if got := c.cron.Expression(); got != c.expected {
			t.Fatalf("expected %q; got %q", c.expected, got)
		}
	}
}

func TestCronNext(t *testing.T) {
	c := HourlyAt("39")
	cases := []struct {
		now      time.Time
		expected time.Time
	}{
		{time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 10, 39, 0, 0, time.UTC)},
		{time.Date(2024, 3, 1, 10, 39, 0, 0, time.UTC), time.Date(2024, 3, 1, 11, 39, 0, 0, time.UTC)},
		{time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC), time.Date(2024, 3, 2, 0, 39, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := c.Next(tc.now)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(tc.expected) {
			t.Fatalf("expected %v; got %v", tc.expected, got)
		}
	}
}

func TestCronNextConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("plus0530", 5*3600+1800)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, loc) // 04:30 UTC
	got, err := HourlyAt("39").Next(now)
	if err != nil {
		t.Fatal(err)
	}
	expected := time.Date(2024, 3, 1, 4, 39, 0, 0, time.UTC)
	if !got.Equal(expected) || got.Location() != time.UTC {
		t.Fatalf("expected %v; got %v", expected, got)
	}
}

func TestCronNextUnsupported(t *testing.T) {
	for _, c := range []Cron{{Minute: "*/5"}, {Minute: "61"}, {Minute: "0", Hour: "3"}, {Minute: "0", WeekDay: "MON"}} {
		if _, err := c.Next(time.Now()); !errors.Is(err, ErrUnsupportedCron) {
			t.Fatalf("expected ErrUnsupportedCron for %+v; got %v", c, err)
		}
	}
}

func TestScheduleRuleInputFor(t *testing.T) {
	r := NewScheduleRule(Workflow{Name: "wf"}, Payload{Bucket: "b"})
	p := r.InputFor("arn:role")
	if p.IotTwinMakerRoleARN != "arn:role" {
		t.Fatalf("expected %q; got %q", "arn:role", p.IotTwinMakerRoleARN)
	}
	if r.Input.IotTwinMakerRoleARN != "" {
		t.Fatal("expected rule input to be left unbound")
	}
	if r.Target != "wf" {
		t.Fatalf("expected %q; got %q", "wf", r.Target)
	}
}
