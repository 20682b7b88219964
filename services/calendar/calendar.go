// Package calendar resolves dates and day bounds in the operator's timezone.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the stored form of result and report dates.
const DateLayout = "02-01-2006"

const isoLayout = "2006-01-02"

// Clock resolves "now" and calendar days in the operator's timezone.
type Clock struct {
	Location *time.Location
	NowFunc  func() time.Time
}

func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Location: loc}
}

func (c Clock) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Clock) Now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc().In(c.loc())
	}
	return time.Now().In(c.loc())
}

// ParseDate accepts DD-MM-YYYY or YYYY-MM-DD and returns local midnight.
func (c Clock) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, isoLayout} {
		if t, err := time.ParseInLocation(layout, s, c.loc()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// DayBounds returns the half-open interval [start, end) covering the date.
func (c Clock) DayBounds(s string) (time.Time, time.Time, error) {
	start, err := c.ParseDate(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// Normalize rewrites either accepted date form into DD-MM-YYYY.
func (c Clock) Normalize(s string) (string, error) {
	t, err := c.ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

func (c Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// DateOf formats an instant as a result date in the clock's timezone.
func (c Clock) DateOf(t time.Time) string {
	return t.In(c.loc()).Format(DateLayout)
}
