// Package rate maps game types onto the stored stake/payout pairs of a market
// and computes winning amounts.
package rate

import (
	"context"
	"errors"

	"matka/errs"
	"matka/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var families = map[models.GameType]models.RateFamily{
	models.SingleDigit:   models.FamilySingleDigit,
	models.OddEven:       models.FamilySingleDigit,
	models.LeftDigit:     models.FamilySingleDigit,
	models.RightDigit:    models.FamilySingleDigit,
	models.JodiDigit:     models.FamilyJodi,
	models.RedBracket:    models.FamilyJodi,
	models.DigitBaseJodi: models.FamilyJodi,
	models.SinglePanna:   models.FamilySinglePanna,
	models.SPMotor:       models.FamilySinglePanna,
	models.SPDPTPMotor:   models.FamilySinglePanna,
	models.ChoicePanna:   models.FamilySinglePanna,
	models.DoublePanna:   models.FamilyDoublePanna,
	models.DPMotor:       models.FamilyDoublePanna,
	models.TwoDigit:      models.FamilyDoublePanna,
	models.TriplePanna:   models.FamilyTriplePanna,
	models.HalfSangam:    models.FamilyHalfSangam,
	models.FullSangam:    models.FamilyFullSangam,
}

// Family maps a game type to the rate family it pays from.
func Family(gt models.GameType) (models.RateFamily, bool) {
	f, ok := families[gt]
	return f, ok
}

// Ratio pays Payout for every Stake units.
type Ratio struct {
	Stake  int64 `json:"stake"`
	Payout int64 `json:"payout"`
}

var neutral = Ratio{Stake: 1, Payout: 1}

// Table is a market's payout configuration.
type Table struct {
	rate            *models.Rate
	neutralFallback bool
}

func NewTable(r *models.Rate, neutralFallback bool) *Table {
	return &Table{rate: r, neutralFallback: neutralFallback}
}

// Load reads the rate row of a market.
func Load(ctx context.Context, db *gorm.DB, market models.Market, neutralFallback bool) (*Table, error) {
	var r models.Rate
	err := db.WithContext(ctx).Where("market = ?", market).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("no rates configured for market %s", market)
	}
	if err != nil {
		return nil, errs.Internal(err, "load rates")
	}
	return NewTable(&r, neutralFallback), nil
}

// PayoutRatio resolves the ratio for gt. Unmapped types fail unless the
// neutral fallback is enabled.
func (t *Table) PayoutRatio(gt models.GameType) (Ratio, error) {
	f, ok := families[gt]
	if !ok {
		if t.neutralFallback {
			return neutral, nil
		}
		return Ratio{}, errs.Validation("no rate family for game type %q", gt)
	}
	pair, _ := t.rate.Pair(f)
	if pair.Stake <= 0 || pair.Payout < 0 {
		return Ratio{}, errs.Business("rate %s is misconfigured", f)
	}
	return Ratio{Stake: pair.Stake, Payout: pair.Payout}, nil
}

// ComputeWinning returns stake * payout / rateStake rounded to two places.
func (t *Table) ComputeWinning(gt models.GameType, stake int64) (decimal.Decimal, error) {
	r, err := t.PayoutRatio(gt)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(stake).
		Mul(decimal.NewFromInt(r.Payout)).
		Div(decimal.NewFromInt(r.Stake)).
		Round(2), nil
}
