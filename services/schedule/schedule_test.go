package schedule

import (
	"testing"
	"time"

	"matka/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseClock(t *testing.T) {
	tests := map[string]int{
		"12:00 AM": 0,
		"9:30 AM":  570,
		"09:30 am": 570,
		"12:15 PM": 735,
		"1:05 PM":  785,
		"11:59 PM": 1439,
	}
	for in, want := range tests {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseClock("25:00")
	assert.Error(t, err)
}

func mainGame(days ...models.DaySchedule) *models.Game {
	return &models.Game{
		Market:   models.MarketMain,
		Name:     "Kalyan",
		IsActive: true,
		Days:     datatypes.NewJSONType(days),
	}
}

func TestCheckMainMarket(t *testing.T) {
	g := mainGame(
		models.DaySchedule{Day: "Monday", OpenTime: "3:45 PM", MarketOpen: true},
		models.DaySchedule{Day: "tuesday", OpenTime: "3:45 PM", MarketOpen: false},
	)

	assert.True(t, IsOpenNow(g, time.Monday, 15*60+44))
	assert.False(t, IsOpenNow(g, time.Monday, 15*60+45), "open time itself is closed")
	assert.False(t, IsOpenNow(g, time.Tuesday, 60), "market flag off")
	assert.False(t, IsOpenNow(g, time.Sunday, 60), "no schedule entry")
}

func TestCheckStarline(t *testing.T) {
	g := &models.Game{Market: models.MarketStarline, Name: "Star 10", OpenTime: "10:00 AM", MarketOpen: true}

	assert.True(t, IsOpenNow(g, time.Sunday, 9*60+59))
	assert.False(t, IsOpenNow(g, time.Wednesday, 10*60))

	g.MarketOpen = false
	assert.Error(t, Check(g, time.Sunday, 0))
}

func TestCheckInvalidOpenTime(t *testing.T) {
	g := mainGame(models.DaySchedule{Day: "Monday", OpenTime: "soon", MarketOpen: true})
	assert.Error(t, Check(g, time.Monday, 0))
}
