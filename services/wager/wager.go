// Package wager validates the per-game-type shape of a wager and exposes it
// as a closed set of payload variants.
package wager

import (
	"matka/errs"
	"matka/models"
	"strconv"
	"strings"
)

// Fields is the loose wire form of a wager's settlement key.
type Fields struct {
	Digit      string `json:"digit"`
	Panna      string `json:"panna"`
	OpenPanna  string `json:"openPanna"`
	ClosePanna string `json:"closePanna"`
}

// Payload is one of Digit, Jodi, Panna, HalfSangam or FullSangam.
type Payload interface {
	// Key identifies the wager inside exposure reports.
	Key(session models.Session) string
	apply(w *models.Wager)
}

type Digit struct{ Value string }

type Jodi struct{ Value string }

type Panna struct{ Value string }

// HalfSangam carries a digit and exactly one panna leg.
type HalfSangam struct {
	Digit      string
	OpenPanna  string
	ClosePanna string
}

type FullSangam struct {
	OpenPanna  string
	ClosePanna string
}

func (p Digit) Key(models.Session) string { return p.Value }
func (p Jodi) Key(models.Session) string  { return p.Value }
func (p Panna) Key(models.Session) string { return p.Value }

func (p HalfSangam) Key(s models.Session) string {
	if s == models.SessionClose || p.OpenPanna != "" {
		return p.OpenPanna + "-" + p.Digit
	}
	return p.Digit + "-" + p.ClosePanna
}

func (p FullSangam) Key(models.Session) string {
	return p.OpenPanna + "-" + p.ClosePanna
}

func (p Digit) apply(w *models.Wager) { w.Digit = p.Value }
func (p Jodi) apply(w *models.Wager)  { w.Digit = p.Value }
func (p Panna) apply(w *models.Wager) { w.Panna = p.Value }

func (p HalfSangam) apply(w *models.Wager) {
	w.Digit = p.Digit
	w.OpenPanna = p.OpenPanna
	w.ClosePanna = p.ClosePanna
}

func (p FullSangam) apply(w *models.Wager) {
	w.OpenPanna = p.OpenPanna
	w.ClosePanna = p.ClosePanna
}

// Shape names the payload variant a game type requires.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeDigit
	ShapeJodi
	ShapePanna
	ShapeHalfSangam
	ShapeFullSangam
)

var shapes = map[models.GameType]Shape{
	models.SingleDigit:   ShapeDigit,
	models.OddEven:       ShapeDigit,
	models.LeftDigit:     ShapeDigit,
	models.RightDigit:    ShapeDigit,
	models.JodiDigit:     ShapeJodi,
	models.RedBracket:    ShapeJodi,
	models.DigitBaseJodi: ShapeJodi,
	models.SinglePanna:   ShapePanna,
	models.DoublePanna:   ShapePanna,
	models.TriplePanna:   ShapePanna,
	models.SPMotor:       ShapePanna,
	models.DPMotor:       ShapePanna,
	models.SPDPTPMotor:   ShapePanna,
	models.TwoDigit:      ShapePanna,
	models.ChoicePanna:   ShapePanna,
	models.HalfSangam:    ShapeHalfSangam,
	models.FullSangam:    ShapeFullSangam,
}

func ShapeOf(gt models.GameType) Shape {
	return shapes[gt]
}

// Parse builds the payload for gt from the raw fields, enforcing lengths and numerals.
func Parse(gt models.GameType, f Fields) (Payload, error) {
	digit := strings.TrimSpace(f.Digit)
	panna := strings.TrimSpace(f.Panna)
	open := strings.TrimSpace(f.OpenPanna)
	closing := strings.TrimSpace(f.ClosePanna)

	switch shapes[gt] {
	case ShapeDigit:
		if !Numerals(digit, 1) {
			return nil, errs.Validation("%s requires a single-numeral digit", gt)
		}
		return Digit{Value: digit}, nil
	case ShapeJodi:
		if !Numerals(digit, 2) {
			return nil, errs.Validation("%s requires a two-numeral digit", gt)
		}
		return Jodi{Value: digit}, nil
	case ShapePanna:
		if !Numerals(panna, 3) {
			return nil, errs.Validation("%s requires a three-numeral panna", gt)
		}
		return Panna{Value: panna}, nil
	case ShapeHalfSangam:
		if !Numerals(digit, 1) {
			return nil, errs.Validation("half-sangam requires a single-numeral digit")
		}
		if (open == "") == (closing == "") {
			return nil, errs.Validation("half-sangam requires exactly one of openPanna or closePanna")
		}
		leg := open + closing
		if !Numerals(leg, 3) {
			return nil, errs.Validation("half-sangam panna must be three numerals")
		}
		return HalfSangam{Digit: digit, OpenPanna: open, ClosePanna: closing}, nil
	case ShapeFullSangam:
		if !Numerals(open, 3) || !Numerals(closing, 3) {
			return nil, errs.Validation("full-sangam requires three-numeral openPanna and closePanna")
		}
		return FullSangam{OpenPanna: open, ClosePanna: closing}, nil
	}
	return nil, errs.Validation("unknown game type %q", gt)
}

// Apply clears every key field on w and then sets the ones p uses.
func Apply(w *models.Wager, p Payload) {
	w.Digit, w.Panna, w.OpenPanna, w.ClosePanna = "", "", "", ""
	p.apply(w)
}

// FromModel rebuilds the payload of a stored wager.
func FromModel(w *models.Wager) (Payload, error) {
	return Parse(w.GameType, Fields{
		Digit:      w.Digit,
		Panna:      w.Panna,
		OpenPanna:  w.OpenPanna,
		ClosePanna: w.ClosePanna,
	})
}

// ResolveSession validates the raw session of a wager for its market and game type.
// Unsessioned game types always resolve to SessionNone.
func ResolveSession(m models.Market, gt models.GameType, raw string) (models.Session, error) {
	if !m.Sessioned(gt) {
		return models.SessionNone, nil
	}
	s, ok := models.ParseSession(raw)
	if !ok {
		return models.SessionNone, errs.Validation("%s requires session open or close", gt)
	}
	return s, nil
}

// CheckLeg enforces that a half-sangam names the panna of the opposite session.
func CheckLeg(p Payload, s models.Session) error {
	hs, ok := p.(HalfSangam)
	if !ok {
		return nil
	}
	switch {
	case s == models.SessionOpen && hs.ClosePanna == "":
		return errs.Validation("open half-sangam requires closePanna")
	case s == models.SessionClose && hs.OpenPanna == "":
		return errs.Validation("close half-sangam requires openPanna")
	}
	return nil
}

// DigitSum is the last decimal digit of the sum of a panna's numerals.
func DigitSum(panna string) string {
	if !Numerals(panna, 3) {
		return ""
	}
	sum := 0
	for _, r := range panna {
		sum += int(r - '0')
	}
	return strconv.Itoa(sum % 10)
}

// Numerals reports whether s is exactly n ASCII decimal numerals.
func Numerals(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
