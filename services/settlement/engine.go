// Package settlement matches declared results against placed wagers, previews
// the winner set and, on declaration, persists results and credits winnings.
package settlement

import (
	"context"
	"errors"
	"strings"
	"time"

	"matka/errs"
	"matka/models"
	"matka/services/calendar"
	"matka/services/rate"
	"matka/services/wager"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Options struct {
	Clock calendar.Clock
	// NeutralRateFallback pays unmapped game types 1:1 instead of failing.
	NeutralRateFallback bool
	// FullSangamLegs compares the open leg of a full-sangam against the declared open result.
	FullSangamLegs bool
}

type Engine struct {
	db   *gorm.DB
	opts Options
}

func NewEngine(db *gorm.DB, opts Options) *Engine {
	return &Engine{db: db, opts: opts}
}

type Declaration struct {
	ResultDate string `json:"resultDate"`
	GameID     uint   `json:"gameId"`
	Session    string `json:"session"`
	Panna      string `json:"panna"`
	Digit      string `json:"digit"`
}

type WinnerRow struct {
	BidID         uint            `json:"bidId"`
	WagerID       uint            `json:"wagerId"`
	UserID        uint            `json:"userId"`
	UserName      string          `json:"userName"`
	GameID        uint            `json:"gameId"`
	GameName      string          `json:"gameName"`
	GameType      models.GameType `json:"gameType"`
	Session       models.Session  `json:"session,omitempty"`
	Digit         string          `json:"digit,omitempty"`
	Panna         string          `json:"panna,omitempty"`
	OpenPanna     string          `json:"openPanna,omitempty"`
	ClosePanna    string          `json:"closePanna,omitempty"`
	StakeAmount   int64           `json:"stakeAmount"`
	WinningAmount decimal.Decimal `json:"winningAmount"`
	ResultDate    string          `json:"resultDate"`
}

type Preview struct {
	Winners        []WinnerRow     `json:"winners"`
	TotalBidAmount int64           `json:"totalBidAmount"`
	TotalWinAmount decimal.Decimal `json:"totalWinAmount"`
}

// slot is a declaration after validation.
type slot struct {
	market models.Market
	date   string
	start  time.Time
	end    time.Time
	game   models.Game
	round
}

type candidate struct {
	models.Wager
	UserID   uint
	UserName string
	GameName string
	// Paid is set when the wager already won under another declared result.
	// A half-sangam is matched in both sessions but pays once.
	Paid bool
}

// Preview computes winners for a declaration without writing anything.
func (e *Engine) Preview(ctx context.Context, market models.Market, d Declaration) (*Preview, error) {
	tx := e.db.WithContext(ctx)
	sl, err := e.resolve(tx, market, d)
	if err != nil {
		return nil, err
	}
	return e.evaluate(tx, sl)
}

func (e *Engine) resolve(tx *gorm.DB, market models.Market, d Declaration) (*slot, error) {
	start, err := e.opts.Clock.ParseDate(d.ResultDate)
	if err != nil {
		return nil, errs.Validation("resultDate must be DD-MM-YYYY")
	}
	if d.GameID == 0 {
		return nil, errs.Validation("gameId is required")
	}

	sl := &slot{
		market: market,
		date:   start.Format(calendar.DateLayout),
		start:  start,
		end:    start.AddDate(0, 0, 1),
		round: round{
			panna: strings.TrimSpace(d.Panna),
			digit: strings.TrimSpace(d.Digit),
			legs:  e.opts.FullSangamLegs,
		},
	}

	switch market {
	case models.MarketMain:
		s, ok := models.ParseSession(d.Session)
		if !ok {
			return nil, errs.Validation("session must be open or close")
		}
		sl.session = s
		fallthrough
	case models.MarketStarline:
		if !wager.Numerals(sl.panna, 3) {
			return nil, errs.Validation("panna must be three numerals")
		}
		if !wager.Numerals(sl.digit, 1) {
			return nil, errs.Validation("digit must be a single numeral")
		}
		if wager.DigitSum(sl.panna) != sl.digit {
			return nil, errs.Validation("digit %s does not match panna %s", sl.digit, sl.panna)
		}
	case models.MarketGali:
		if !wager.Numerals(sl.digit, 2) {
			return nil, errs.Validation("digit must be two numerals")
		}
		sl.panna = ""
	default:
		return nil, errs.Validation("unknown market %q", market)
	}

	err = tx.Where("id = ? AND market = ?", d.GameID, market).First(&sl.game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("game %d not found", d.GameID)
	}
	if err != nil {
		return nil, errs.Internal(err, "load game")
	}

	if sl.legs && sl.session == models.SessionClose {
		var open models.Result
		err := tx.Where("market = ? AND date = ? AND game_id = ? AND session = ?",
			market, sl.date, sl.game.ID, models.SessionOpen).First(&open).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Internal(err, "load open result")
		}
		sl.openPanna = open.Panna
	}
	return sl, nil
}

func (e *Engine) evaluate(tx *gorm.DB, sl *slot) (*Preview, error) {
	var rows []candidate
	err := tx.Table("wagers").
		Select(`wagers.*, bids.user_id, users.name AS user_name, games.name AS game_name,
			EXISTS (SELECT 1 FROM winners WHERE winners.wager_id = wagers.id) AS paid`).
		Joins("JOIN bids ON bids.id = wagers.bid_id AND bids.deleted_at IS NULL").
		Joins("LEFT JOIN users ON users.id = bids.user_id").
		Joins("LEFT JOIN games ON games.id = wagers.game_id").
		Where("bids.market = ? AND wagers.game_id = ? AND bids.created_at >= ? AND bids.created_at < ?",
			sl.market, sl.game.ID, sl.start.UTC(), sl.end.UTC()).
		Order("wagers.id").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.Internal(err, "load wagers")
	}

	out := &Preview{Winners: []WinnerRow{}, TotalWinAmount: decimal.Zero}
	if len(rows) == 0 {
		return out, nil
	}

	var table *rate.Table
	byType := matchers[sl.market]
	for _, c := range rows {
		match, ok := byType[c.GameType]
		if !ok {
			logrus.WithFields(logrus.Fields{"wager_id": c.ID, "game_type": c.GameType}).Warn("no matcher for game type")
			continue
		}
		p, err := wager.FromModel(&c.Wager)
		if err != nil {
			logrus.WithFields(logrus.Fields{"wager_id": c.ID, "error": err}).Warn("skipping malformed wager")
			continue
		}

		applicable, won := match(p, c.Session, &sl.round)
		if !applicable {
			continue
		}
		out.TotalBidAmount += c.Amount
		if !won || c.Paid {
			continue
		}

		if table == nil {
			if table, err = rate.Load(tx.Statement.Context, tx, sl.market, e.opts.NeutralRateFallback); err != nil {
				return nil, err
			}
		}
		amount, err := table.ComputeWinning(c.GameType, c.Amount)
		if err != nil {
			return nil, err
		}

		out.Winners = append(out.Winners, WinnerRow{
			BidID:         c.BidID,
			WagerID:       c.ID,
			UserID:        c.UserID,
			UserName:      c.UserName,
			GameID:        c.GameID,
			GameName:      c.GameName,
			GameType:      c.GameType,
			Session:       c.Session,
			Digit:         c.Digit,
			Panna:         c.Panna,
			OpenPanna:     c.OpenPanna,
			ClosePanna:    c.ClosePanna,
			StakeAmount:   c.Amount,
			WinningAmount: amount,
			ResultDate:    sl.date,
		})
		out.TotalWinAmount = out.TotalWinAmount.Add(amount)
	}
	return out, nil
}
