// Package bids places, edits and lists multi-wager bids. Every balance change
// is recorded through the ledger in the same unit of work.
package bids

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"matka/errs"
	"matka/models"
	"matka/services/calendar"
	"matka/services/ledger"
	"matka/services/schedule"
	"matka/services/settings"
	"matka/services/wager"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	clock calendar.Clock
}

func NewService(db *gorm.DB, clock calendar.Clock) *Service {
	return &Service{db: db, clock: clock}
}

type WagerRequest struct {
	GameID   uint            `json:"gameId"`
	GameType models.GameType `json:"gameType"`
	Amount   float64         `json:"amount"`
	Session  string          `json:"session"`
	wager.Fields
}

type PlaceRequest struct {
	UserID uint           `json:"userId"`
	Wagers []WagerRequest `json:"wagers"`
}

type Placement struct {
	BidID          uint   `json:"bidId"`
	Reference      string `json:"reference"`
	TotalAmount    int64  `json:"totalAmount"`
	NewBalance     int64  `json:"newBalance"`
	TransactionIDs []uint `json:"transactionIds"`
}

// Place validates and records a bid. Game, shape, session and balance checks
// run inside the same unit of work as the debits and the bid insert.
func (s *Service) Place(ctx context.Context, market models.Market, req PlaceRequest) (*Placement, error) {
	if req.UserID == 0 || len(req.Wagers) == 0 {
		return nil, errs.Validation("userId and at least one wager are required")
	}

	limits, err := settings.Load(ctx, s.db)
	if err != nil {
		return nil, err
	}

	amounts := make([]int64, len(req.Wagers))
	var total int64
	for i, w := range req.Wagers {
		a, err := limits.CheckAmount(w.Amount)
		if err != nil {
			return nil, atWager(i, err)
		}
		amounts[i] = a
		total += a
	}

	for i, w := range req.Wagers {
		if !market.Allows(w.GameType) {
			return nil, atWager(i, errs.Validation("game type %q is not offered in this market", w.GameType))
		}
	}

	now := s.clock.Now()
	var out *Placement

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		games, err := loadGames(tx, market, req.Wagers)
		if err != nil {
			return err
		}
		for i, w := range req.Wagers {
			g := games[w.GameID]
			if g == nil {
				return atWager(i, errs.NotFound("game %d not found", w.GameID))
			}
			if !g.IsActive {
				return atWager(i, errs.Validation("%s is not active", g.Name))
			}
			if err := schedule.Check(g, now.Weekday(), schedule.MinutesOf(now)); err != nil {
				return atWager(i, err)
			}
		}

		payloads := make([]wager.Payload, len(req.Wagers))
		for i, w := range req.Wagers {
			p, err := wager.Parse(w.GameType, w.Fields)
			if err != nil {
				return atWager(i, err)
			}
			payloads[i] = p
		}

		sessions := make([]models.Session, len(req.Wagers))
		for i, w := range req.Wagers {
			sess, err := wager.ResolveSession(market, w.GameType, w.Session)
			if err != nil {
				return atWager(i, err)
			}
			if err := wager.CheckLeg(payloads[i], sess); err != nil {
				return atWager(i, err)
			}
			sessions[i] = sess
		}

		user, err := ledger.LockUser(tx, req.UserID)
		if err != nil {
			return err
		}
		if user.IsBlocked {
			return errs.Business("user is blocked")
		}
		if user.Balance < total {
			return errs.Business("insufficient balance")
		}

		bid := models.Bid{
			Reference:   uuid.NewString(),
			Market:      market,
			UserID:      user.ID,
			TotalAmount: total,
		}
		bid.CreatedAt = now.UTC()
		refs := make([]uint, 0, len(req.Wagers))
		for i, w := range req.Wagers {
			desc := Describe(games[w.GameID].Name, w.GameType, sessions[i], payloads[i])
			trx, err := ledger.Debit(tx, user, amounts[i], desc)
			if err != nil {
				return err
			}
			row := models.Wager{
				Position:      i,
				GameID:        w.GameID,
				GameType:      w.GameType,
				Amount:        amounts[i],
				Session:       sessions[i],
				TransactionID: trx.ID,
			}
			wager.Apply(&row, payloads[i])
			bid.Wagers = append(bid.Wagers, row)
			refs = append(refs, trx.ID)
		}
		bid.TransactionRefs = refs

		if err := tx.Create(&bid).Error; err != nil {
			return errs.Internal(err, "create bid")
		}

		out = &Placement{
			BidID:          bid.ID,
			Reference:      bid.Reference,
			TotalAmount:    total,
			NewBalance:     user.Balance,
			TransactionIDs: refs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"market":  market,
		"bid_id":  out.BidID,
		"user_id": req.UserID,
		"wagers":  len(req.Wagers),
		"total":   total,
	}).Info("bid placed")
	return out, nil
}

func loadGames(tx *gorm.DB, market models.Market, reqs []WagerRequest) (map[uint]*models.Game, error) {
	ids := make([]uint, 0, len(reqs))
	seen := map[uint]bool{}
	for _, w := range reqs {
		if !seen[w.GameID] {
			seen[w.GameID] = true
			ids = append(ids, w.GameID)
		}
	}

	var games []models.Game
	if err := tx.Where("id IN ? AND market = ?", ids, market).Find(&games).Error; err != nil {
		return nil, errs.Internal(err, "load games")
	}
	out := make(map[uint]*models.Game, len(games))
	for i := range games {
		out[games[i].ID] = &games[i]
	}
	return out, nil
}

// Describe renders the ledger description of one wager.
func Describe(gameName string, gt models.GameType, sess models.Session, p wager.Payload) string {
	parts := []string{gameName, string(gt)}
	if sess != models.SessionNone {
		parts = append(parts, string(sess))
	}
	switch v := p.(type) {
	case wager.Digit:
		parts = append(parts, "digit "+v.Value)
	case wager.Jodi:
		parts = append(parts, "jodi "+v.Value)
	case wager.Panna:
		parts = append(parts, "panna "+v.Value)
	case wager.HalfSangam:
		parts = append(parts, "digit "+v.Digit)
		if v.OpenPanna != "" {
			parts = append(parts, "open panna "+v.OpenPanna)
		} else {
			parts = append(parts, "close panna "+v.ClosePanna)
		}
	case wager.FullSangam:
		parts = append(parts, "open panna "+v.OpenPanna, "close panna "+v.ClosePanna)
	}
	return strings.Join(parts, " ")
}

func atWager(i int, err error) error {
	var e *errs.Error
	if errors.As(err, &e) && e.Kind != errs.KindInternal {
		return &errs.Error{Kind: e.Kind, Message: fmt.Sprintf("wager %d: %s", i+1, e.Message), Err: e.Err}
	}
	return err
}
