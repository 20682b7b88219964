// Package settings loads the account-wide bid limits.
package settings

import (
	"context"
	"errors"
	"math"

	"matka/errs"
	"matka/models"

	"gorm.io/gorm"
)

// Limits bounds a single wager amount.
type Limits struct {
	MinBid int64 `json:"minBid"`
	MaxBid int64 `json:"maxBid"`
}

var Default = Limits{MinBid: 1, MaxBid: math.MaxInt32}

// Load reads the account settings row, falling back to Default when none exists.
func Load(ctx context.Context, db *gorm.DB) (Limits, error) {
	var s models.Setting
	err := db.WithContext(ctx).Order("id").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Default, nil
	}
	if err != nil {
		return Limits{}, errs.Internal(err, "load settings")
	}

	l := Limits{MinBid: s.MinBid, MaxBid: s.MaxBid}
	if l.MinBid <= 0 {
		l.MinBid = Default.MinBid
	}
	if l.MaxBid <= 0 {
		l.MaxBid = Default.MaxBid
	}
	return l, nil
}

// CheckAmount validates a raw wager amount and returns it as whole units.
func (l Limits) CheckAmount(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, errs.Validation("amount must be a positive number")
	}
	if amount != math.Trunc(amount) {
		return 0, errs.Validation("amount must be a whole number")
	}
	if amount < float64(l.MinBid) || amount > float64(l.MaxBid) {
		return 0, errs.Validation("amount must be between %d and %d", l.MinBid, l.MaxBid)
	}
	return int64(amount), nil
}
