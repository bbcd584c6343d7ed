package pipeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/sfsync/constants"
)

var ErrUnsupportedCron = errors.New("only a fixed minute with every other field wildcarded is supported")

// Cron holds the six fields of an EventBridge cron expression. Empty fields take the
// EventBridge defaults: "*" everywhere except day-of-week, which is "?" unless set
// (in which case day-of-month becomes "?").
type Cron struct {
	Minute  string `json:"minute,omitempty"`
	Hour    string `json:"hour,omitempty"`
	Day     string `json:"day,omitempty"`
	Month   string `json:"month,omitempty"`
	WeekDay string `json:"weekDay,omitempty"`
	Year    string `json:"year,omitempty"`
}

func (c Cron) Expression() string {
	minute := orDefault(c.Minute, "*")
	hour := orDefault(c.Hour, "*")
	month := orDefault(c.Month, "*")
	year := orDefault(c.Year, "*")
	day, weekDay := c.Day, c.WeekDay
	if weekDay == "" {
		weekDay = "?"
		day = orDefault(day, "*")
	} else {
		day = orDefault(day, "?")
	}
	return fmt.Sprintf("cron(%v %v %v %v %v %v)", minute, hour, day, month, weekDay, year)
}

// Next returns the first firing strictly after t, in UTC.
func (c Cron) Next(t time.Time) (time.Time, error) {
	m, err := strconv.Atoi(c.Minute)
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, errors.Wrapf(ErrUnsupportedCron, "minute %q", c.Minute)
	}
	for _, f := range []string{c.Hour, c.Day, c.Month, c.Year} {
		if f != "" && f != "*" {
			return time.Time{}, errors.Wrapf(ErrUnsupportedCron, "expression %v", c.Expression())
		}
	}
	if c.WeekDay != "" && c.WeekDay != "?" {
		return time.Time{}, errors.Wrapf(ErrUnsupportedCron, "expression %v", c.Expression())
	}
	t = t.UTC()
	next := t.Truncate(time.Hour).Add(time.Duration(m) * time.Minute)
	if !next.After(t) {
		next = next.Add(time.Hour)
	}
	return next, nil
}

// ScheduleRule fires Target with a literal Input. Input is fixed when the plan is built;
// only the role ARN is bound later, once the role exists.
type ScheduleRule struct {
	Name   string  `json:"name"`
	Cron   Cron    `json:"cron"`
	Target string  `json:"target"`
	Input  Payload `json:"input"`
}

// HourlyAt fires once every hour at the given minute.
func HourlyAt(minute string) Cron {
	return Cron{Minute: minute}
}

func NewScheduleRule(target Workflow, input Payload) ScheduleRule {
	return ScheduleRule{
		Name:   constants.RuleName,
		Cron:   HourlyAt(constants.ScheduleMinute),
		Target: target.Name,
		Input:  input,
	}
}

// InputFor returns the rule input with the role ARN bound.
func (r ScheduleRule) InputFor(roleARN string) Payload {
	p := r.Input
	p.IotTwinMakerRoleARN = roleARN
	return p
}

func orDefault(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
