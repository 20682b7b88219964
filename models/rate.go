package models

import "gorm.io/gorm"

// RatePair pays Payout for every Stake units wagered.
type RatePair struct {
	Stake  int64 `json:"stake"`
	Payout int64 `json:"payout"`
}

type RateFamily string

const (
	FamilySingleDigit RateFamily = "single_digit"
	FamilyJodi        RateFamily = "jodi_digit"
	FamilySinglePanna RateFamily = "single_panna"
	FamilyDoublePanna RateFamily = "double_panna"
	FamilyTriplePanna RateFamily = "triple_panna"
	FamilyHalfSangam  RateFamily = "half_sangam"
	FamilyFullSangam  RateFamily = "full_sangam"
)

type Rate struct {
	gorm.Model

	Market      Market   `gorm:"size:16;uniqueIndex" json:"market"`
	SingleDigit RatePair `gorm:"embedded;embeddedPrefix:single_digit_" json:"single_digit"`
	Jodi        RatePair `gorm:"embedded;embeddedPrefix:jodi_" json:"jodi"`
	SinglePanna RatePair `gorm:"embedded;embeddedPrefix:single_panna_" json:"single_panna"`
	DoublePanna RatePair `gorm:"embedded;embeddedPrefix:double_panna_" json:"double_panna"`
	TriplePanna RatePair `gorm:"embedded;embeddedPrefix:triple_panna_" json:"triple_panna"`
	HalfSangam  RatePair `gorm:"embedded;embeddedPrefix:half_sangam_" json:"half_sangam"`
	FullSangam  RatePair `gorm:"embedded;embeddedPrefix:full_sangam_" json:"full_sangam"`
}

func (r *Rate) Pair(f RateFamily) (RatePair, bool) {
	switch f {
	case FamilySingleDigit:
		return r.SingleDigit, true
	case FamilyJodi:
		return r.Jodi, true
	case FamilySinglePanna:
		return r.SinglePanna, true
	case FamilyDoublePanna:
		return r.DoublePanna, true
	case FamilyTriplePanna:
		return r.TriplePanna, true
	case FamilyHalfSangam:
		return r.HalfSangam, true
	case FamilyFullSangam:
		return r.FullSangam, true
	}
	return RatePair{}, false
}

// Setting holds the global wager limits.
type Setting struct {
	gorm.Model

	MinBid int64 `json:"min_bid"`
	MaxBid int64 `json:"max_bid"`
}
