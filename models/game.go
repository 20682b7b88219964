package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DaySchedule is one weekday entry of a main or gali game.
type DaySchedule struct {
	Day        string `json:"day"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	MarketOpen bool   `json:"market_open"`
}

type Game struct {
	gorm.Model

	Market   Market                            `gorm:"size:16;index" json:"market"`
	Name     string                            `gorm:"size:64" json:"name"`
	IsActive bool                              `json:"is_active"`
	Days     datatypes.JSONType[[]DaySchedule] `json:"days"`

	// starline games run on a single daily slot
	OpenTime   string `gorm:"size:16" json:"open_time,omitempty"`
	MarketOpen bool   `json:"market_open"`
}

// DayFor returns the schedule entry matching the given weekday.
func (g *Game) DayFor(day time.Weekday) (DaySchedule, bool) {
	want := strings.ToLower(day.String())
	for _, d := range g.Days.Data() {
		if strings.ToLower(strings.TrimSpace(d.Day)) == want {
			return d, true
		}
	}
	return DaySchedule{}, false
}
