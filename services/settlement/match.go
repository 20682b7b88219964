package settlement

import (
	"matka/models"
	"matka/services/wager"
)

// round is a validated declaration the matchers compare wagers against.
type round struct {
	session models.Session
	panna   string
	digit   string
	// declared open panna of the same game and date, set when legs matching is on
	openPanna string
	legs      bool
}

// matchFunc reports whether the wager counts toward the stake total and whether it wins.
type matchFunc func(p wager.Payload, s models.Session, r *round) (applicable, won bool)

var pannaTypes = []models.GameType{
	models.SinglePanna, models.DoublePanna, models.TriplePanna,
	models.SPMotor, models.DPMotor, models.SPDPTPMotor,
	models.ChoicePanna, models.TwoDigit,
}

var matchers = map[models.Market]map[models.GameType]matchFunc{
	models.MarketMain: withPanna(sessionPanna, map[models.GameType]matchFunc{
		models.SingleDigit:   sessionDigit,
		models.OddEven:       sessionDigit,
		models.JodiDigit:     closeJodi,
		models.RedBracket:    closeJodi,
		models.FullSangam:    closeFullSangam,
		models.HalfSangam:    halfSangam,
		models.DigitBaseJodi: digitBaseJodi,
	}),
	models.MarketStarline: withPanna(anyPanna, map[models.GameType]matchFunc{
		models.SingleDigit: anyDigit,
	}),
	models.MarketGali: {
		models.LeftDigit:  galiLeft,
		models.RightDigit: galiRight,
		models.JodiDigit:  galiJodi,
	},
}

func withPanna(fn matchFunc, m map[models.GameType]matchFunc) map[models.GameType]matchFunc {
	for _, gt := range pannaTypes {
		m[gt] = fn
	}
	return m
}

func sessionDigit(p wager.Payload, s models.Session, r *round) (bool, bool) {
	if s != r.session {
		return false, false
	}
	d, ok := p.(wager.Digit)
	return true, ok && d.Value == r.digit
}

func sessionPanna(p wager.Payload, s models.Session, r *round) (bool, bool) {
	if s != r.session {
		return false, false
	}
	return anyPanna(p, s, r)
}

func closeJodi(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	if r.session != models.SessionClose {
		return false, false
	}
	j, ok := p.(wager.Jodi)
	return true, ok && j.Value == r.digit+r.digit
}

func closeFullSangam(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	if r.session != models.SessionClose {
		return false, false
	}
	fs, ok := p.(wager.FullSangam)
	if !ok {
		return true, false
	}
	open := r.panna
	if r.legs {
		open = r.openPanna
	}
	return true, open != "" && fs.OpenPanna == open && fs.ClosePanna == r.panna
}

// halfSangam compares the leg of the other session against the declared digit.
func halfSangam(p wager.Payload, s models.Session, r *round) (bool, bool) {
	hs, ok := p.(wager.HalfSangam)
	if !ok {
		return true, false
	}
	switch s {
	case models.SessionOpen:
		return true, wager.DigitSum(hs.ClosePanna) == r.digit
	case models.SessionClose:
		return true, wager.DigitSum(hs.OpenPanna) == r.digit
	}
	return true, false
}

func digitBaseJodi(p wager.Payload, s models.Session, r *round) (bool, bool) {
	if s != r.session {
		return false, false
	}
	j, ok := p.(wager.Jodi)
	if !ok {
		return true, false
	}
	switch s {
	case models.SessionOpen:
		return true, j.Value[:1] == r.digit
	case models.SessionClose:
		return true, j.Value[1:] == r.digit
	}
	return true, false
}

func anyDigit(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	d, ok := p.(wager.Digit)
	return true, ok && d.Value == r.digit
}

func anyPanna(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	pn, ok := p.(wager.Panna)
	return true, ok && pn.Value == r.panna && wager.DigitSum(r.panna) == r.digit
}

func galiLeft(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	d, ok := p.(wager.Digit)
	return true, ok && d.Value == r.digit[:1]
}

func galiRight(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	d, ok := p.(wager.Digit)
	return true, ok && d.Value == r.digit[1:]
}

func galiJodi(p wager.Payload, _ models.Session, r *round) (bool, bool) {
	j, ok := p.(wager.Jodi)
	return true, ok && j.Value == r.digit
}
