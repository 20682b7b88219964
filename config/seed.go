package config

import (
	"fmt"
	"os"

	"matka/models"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

type PairSeed struct {
	Stake  int64 `yaml:"stake"`
	Payout int64 `yaml:"payout"`
}

func (p PairSeed) pair() models.RatePair {
	return models.RatePair{Stake: p.Stake, Payout: p.Payout}
}

type RateSeed struct {
	SingleDigit PairSeed `yaml:"single_digit"`
	JodiDigit   PairSeed `yaml:"jodi_digit"`
	SinglePanna PairSeed `yaml:"single_panna"`
	DoublePanna PairSeed `yaml:"double_panna"`
	TriplePanna PairSeed `yaml:"triple_panna"`
	HalfSangam  PairSeed `yaml:"half_sangam"`
	FullSangam  PairSeed `yaml:"full_sangam"`
}

func (r RateSeed) Model(market models.Market) models.Rate {
	return models.Rate{
		Market:      market,
		SingleDigit: r.SingleDigit.pair(),
		Jodi:        r.JodiDigit.pair(),
		SinglePanna: r.SinglePanna.pair(),
		DoublePanna: r.DoublePanna.pair(),
		TriplePanna: r.TriplePanna.pair(),
		HalfSangam:  r.HalfSangam.pair(),
		FullSangam:  r.FullSangam.pair(),
	}
}

type DaySeed struct {
	Day        string `yaml:"day"`
	OpenTime   string `yaml:"open_time"`
	CloseTime  string `yaml:"close_time"`
	MarketOpen bool   `yaml:"market_open"`
}

type GameSeed struct {
	Market     string    `yaml:"market"`
	Name       string    `yaml:"name"`
	Active     bool      `yaml:"active"`
	OpenTime   string    `yaml:"open_time"`
	MarketOpen bool      `yaml:"market_open"`
	Days       []DaySeed `yaml:"days"`
}

func (g GameSeed) Model() models.Game {
	days := make([]models.DaySchedule, 0, len(g.Days))
	for _, d := range g.Days {
		days = append(days, models.DaySchedule(d))
	}
	return models.Game{
		Market:     models.Market(g.Market),
		Name:       g.Name,
		IsActive:   g.Active,
		Days:       datatypes.NewJSONType(days),
		OpenTime:   g.OpenTime,
		MarketOpen: g.MarketOpen,
	}
}

type UserSeed struct {
	Name    string `yaml:"name"`
	Phone   string `yaml:"phone"`
	Balance int64  `yaml:"balance"`
}

// Seed is the first-start content of the database.
type Seed struct {
	Settings struct {
		MinBid int64 `yaml:"min_bid"`
		MaxBid int64 `yaml:"max_bid"`
	} `yaml:"settings"`
	Rates map[string]RateSeed `yaml:"rates"`
	Games []GameSeed          `yaml:"games"`
	Users []UserSeed          `yaml:"users"`
}

func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for market := range s.Rates {
		if _, ok := models.ParseMarket(market); !ok {
			return nil, fmt.Errorf("seed rates: unknown market %q", market)
		}
	}
	for _, g := range s.Games {
		if _, ok := models.ParseMarket(g.Market); !ok {
			return nil, fmt.Errorf("seed game %s: unknown market %q", g.Name, g.Market)
		}
	}
	return &s, nil
}
