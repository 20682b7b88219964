// Package schedule decides whether a game accepts wagers at a given instant.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"matka/errs"
	"matka/models"
)

const clockLayout = "3:04 PM"

// ParseClock turns a 12-hour "h:mm AM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesOf returns the minutes since midnight of t in its own location.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Check returns a validation error describing why the game is closed, or nil.
// Wagers are accepted strictly before the open time.
func Check(g *models.Game, weekday time.Weekday, nowMinutes int) error {
	openTime, marketOpen := g.OpenTime, g.MarketOpen
	if g.Market != models.MarketStarline {
		day, ok := g.DayFor(weekday)
		if !ok {
			return errs.Validation("%s has no schedule for %s", g.Name, weekday)
		}
		openTime, marketOpen = day.OpenTime, day.MarketOpen
	}
	if !marketOpen {
		return errs.Validation("%s market is closed", g.Name)
	}
	open, err := ParseClock(openTime)
	if err != nil {
		return errs.Validation("%s has an invalid open time", g.Name)
	}
	if nowMinutes >= open {
		return errs.Validation("%s is closed for bidding", g.Name)
	}
	return nil
}

// IsOpenNow reports whether the game accepts wagers at weekday/nowMinutes.
func IsOpenNow(g *models.Game, weekday time.Weekday, nowMinutes int) bool {
	return Check(g, weekday, nowMinutes) == nil
}
