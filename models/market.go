package models

import "strings"

type Market string

const (
	MarketMain     Market = "main"
	MarketStarline Market = "starline"
	MarketGali     Market = "gali"
)

func ParseMarket(s string) (Market, bool) {
	m := Market(strings.ToLower(strings.TrimSpace(s)))
	_, ok := marketGameTypes[m]
	return m, ok
}

type Session string

const (
	SessionNone  Session = ""
	SessionOpen  Session = "open"
	SessionClose Session = "close"
)

func ParseSession(s string) (Session, bool) {
	switch Session(strings.ToLower(strings.TrimSpace(s))) {
	case SessionOpen:
		return SessionOpen, true
	case SessionClose:
		return SessionClose, true
	}
	return SessionNone, false
}

type GameType string

const (
	SingleDigit   GameType = "single-digit"
	JodiDigit     GameType = "jodi-digit"
	SinglePanna   GameType = "single-panna"
	DoublePanna   GameType = "double-panna"
	TriplePanna   GameType = "triple-panna"
	HalfSangam    GameType = "half-sangam"
	FullSangam    GameType = "full-sangam"
	SPMotor       GameType = "sp-motor"
	DPMotor       GameType = "dp-motor"
	SPDPTPMotor   GameType = "sp-dp-tp-motor"
	OddEven       GameType = "odd-even"
	TwoDigit      GameType = "two-digit"
	DigitBaseJodi GameType = "digit-base-jodi"
	ChoicePanna   GameType = "choice-panna"
	RedBracket    GameType = "red-bracket"
	LeftDigit     GameType = "left-digit"
	RightDigit    GameType = "right-digit"
)

var marketGameTypes = map[Market][]GameType{
	MarketMain: {
		SingleDigit, JodiDigit, SinglePanna, DoublePanna, TriplePanna,
		HalfSangam, FullSangam, SPMotor, DPMotor, SPDPTPMotor, OddEven,
		TwoDigit, DigitBaseJodi, ChoicePanna, RedBracket,
	},
	MarketStarline: {SingleDigit, SinglePanna, DoublePanna, TriplePanna},
	MarketGali: {LeftDigit, RightDigit, JodiDigit},
}

// GameTypes lists the game types a market accepts.
func (m Market) GameTypes() []GameType {
	return marketGameTypes[m]
}

func (m Market) Allows(gt GameType) bool {
	for _, t := range marketGameTypes[m] {
		if t == gt {
			return true
		}
	}
	return false
}

// Sessioned reports whether wagers of gt in m carry an open or close session.
func (m Market) Sessioned(gt GameType) bool {
	if m != MarketMain {
		return false
	}
	switch gt {
	case JodiDigit, RedBracket, FullSangam:
		return false
	}
	return true
}
