package dbtest

import (
	"testing"
	"time"

	"matka/models"
	"matka/services/calendar"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Now is Monday 19 October 2026, 10:00 UTC.
var Now = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

// Today is Now formatted as a result date.
const Today = "19-10-2026"

func Clock() calendar.Clock {
	return calendar.Clock{Location: time.UTC, NowFunc: func() time.Time { return Now }}
}

func User(t *testing.T, db *gorm.DB, name string, balance int64) *models.User {
	t.Helper()
	u := &models.User{Name: name, Phone: "9000000000", Balance: balance}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Game creates an active game open every day until openTime.
func Game(t *testing.T, db *gorm.DB, market models.Market, name, openTime string) *models.Game {
	t.Helper()
	g := &models.Game{Market: market, Name: name, IsActive: true}
	if market == models.MarketStarline {
		g.OpenTime = openTime
		g.MarketOpen = true
	} else {
		days := make([]models.DaySchedule, 0, 7)
		for d := time.Sunday; d <= time.Saturday; d++ {
			days = append(days, models.DaySchedule{
				Day:        d.String(),
				OpenTime:   openTime,
				CloseTime:  "11:59 PM",
				MarketOpen: true,
			})
		}
		g.Days = datatypes.NewJSONType(days)
	}
	require.NoError(t, db.Create(g).Error)
	return g
}

// Rates installs the usual 10:95 style table for a market.
func Rates(t *testing.T, db *gorm.DB, market models.Market) *models.Rate {
	t.Helper()
	r := &models.Rate{
		Market:      market,
		SingleDigit: models.RatePair{Stake: 10, Payout: 95},
		Jodi:        models.RatePair{Stake: 10, Payout: 950},
		SinglePanna: models.RatePair{Stake: 10, Payout: 1400},
		DoublePanna: models.RatePair{Stake: 10, Payout: 2800},
		TriplePanna: models.RatePair{Stake: 10, Payout: 7000},
		HalfSangam:  models.RatePair{Stake: 10, Payout: 10000},
		FullSangam:  models.RatePair{Stake: 10, Payout: 100000},
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func Settings(t *testing.T, db *gorm.DB, minBid, maxBid int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Setting{MinBid: minBid, MaxBid: maxBid}).Error)
}

// Counts returns the number of transactions and bids stored.
func Counts(t *testing.T, db *gorm.DB) (transactions, bids int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.Transaction{}).Count(&transactions).Error)
	require.NoError(t, db.Model(&models.Bid{}).Count(&bids).Error)
	return transactions, bids
}

func Balance(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, userID).Error)
	return u.Balance
}
