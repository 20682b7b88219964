package rate

import (
	"context"
	"testing"

	"matka/database/dbtest"
	"matka/errs"
	"matka/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(neutral bool) *Table {
	return NewTable(&models.Rate{
		SingleDigit: models.RatePair{Stake: 10, Payout: 95},
		Jodi:        models.RatePair{Stake: 10, Payout: 950},
		SinglePanna: models.RatePair{Stake: 10, Payout: 1400},
		DoublePanna: models.RatePair{Stake: 10, Payout: 2800},
		TriplePanna: models.RatePair{Stake: 10, Payout: 7000},
		HalfSangam:  models.RatePair{Stake: 10, Payout: 10000},
		FullSangam:  models.RatePair{Stake: 3, Payout: 100},
	}, neutral)
}

func TestFamilyBorrowing(t *testing.T) {
	cases := map[models.GameType]models.RateFamily{
		models.SPMotor:       models.FamilySinglePanna,
		models.ChoicePanna:   models.FamilySinglePanna,
		models.DPMotor:       models.FamilyDoublePanna,
		models.TwoDigit:      models.FamilyDoublePanna,
		models.RedBracket:    models.FamilyJodi,
		models.DigitBaseJodi: models.FamilyJodi,
		models.OddEven:       models.FamilySingleDigit,
		models.LeftDigit:     models.FamilySingleDigit,
	}
	for gt, want := range cases {
		got, ok := Family(gt)
		assert.True(t, ok, gt)
		assert.Equal(t, want, got, gt)
	}
}

func TestComputeWinning(t *testing.T) {
	tb := table(false)

	w, err := tb.ComputeWinning(models.SingleDigit, 100)
	require.NoError(t, err)
	assert.True(t, w.Equal(decimal.NewFromInt(950)), w.String())

	w, err = tb.ComputeWinning(models.SPMotor, 20)
	require.NoError(t, err)
	assert.True(t, w.Equal(decimal.NewFromInt(2800)), w.String())

	w, err = tb.ComputeWinning(models.FullSangam, 10)
	require.NoError(t, err)
	assert.Equal(t, "333.33", w.StringFixed(2))
}

func TestUnknownGameType(t *testing.T) {
	_, err := table(false).PayoutRatio(models.GameType("lucky-seven"))
	assert.True(t, errs.Is(err, errs.KindValidation))

	r, err := table(true).PayoutRatio(models.GameType("lucky-seven"))
	require.NoError(t, err)
	assert.Equal(t, Ratio{Stake: 1, Payout: 1}, r)
}

func TestMisconfiguredRate(t *testing.T) {
	tb := NewTable(&models.Rate{}, false)
	_, err := tb.PayoutRatio(models.SingleDigit)
	assert.True(t, errs.Is(err, errs.KindBusiness))
}

func TestLoad(t *testing.T) {
	db := dbtest.New(t)
	dbtest.Rates(t, db, models.MarketMain)

	tb, err := Load(context.Background(), db, models.MarketMain, false)
	require.NoError(t, err)
	r, err := tb.PayoutRatio(models.JodiDigit)
	require.NoError(t, err)
	assert.Equal(t, Ratio{Stake: 10, Payout: 950}, r)

	_, err = Load(context.Background(), db, models.MarketGali, false)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}
