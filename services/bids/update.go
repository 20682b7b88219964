package bids

import (
	"context"
	"errors"

	"matka/errs"
	"matka/models"
	"matka/services/ledger"
	"matka/services/settings"
	"matka/services/wager"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UpdateRequest edits the first wager of a bid. Nil fields keep their value;
// an empty string clears a key field.
type UpdateRequest struct {
	BidID      uint             `json:"bidId"`
	UserID     uint             `json:"userId"`
	GameType   *models.GameType `json:"gameType"`
	Amount     *float64         `json:"amount"`
	Session    *string          `json:"session"`
	Digit      *string          `json:"digit"`
	Panna      *string          `json:"panna"`
	OpenPanna  *string          `json:"openPanna"`
	ClosePanna *string          `json:"closePanna"`
}

type UpdateResult struct {
	Wager         models.Wager `json:"wager"`
	Delta         int64        `json:"delta"`
	NewBalance    int64        `json:"newBalance"`
	TransactionID uint         `json:"transactionId,omitempty"`
}

func (s *Service) Update(ctx context.Context, market models.Market, req UpdateRequest) (*UpdateResult, error) {
	if req.BidID == 0 || req.UserID == 0 {
		return nil, errs.Validation("bidId and userId are required")
	}

	limits, err := settings.Load(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var out *UpdateResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ledger.LockUser(tx, req.UserID)
		if err != nil {
			return err
		}

		var bid models.Bid
		err = tx.Preload("Wagers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).Where("id = ? AND user_id = ? AND market = ?", req.BidID, req.UserID, market).First(&bid).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("bid %d not found", req.BidID)
		}
		if err != nil {
			return errs.Internal(err, "load bid")
		}
		if len(bid.Wagers) == 0 {
			return errs.NotFound("bid %d has no wagers", req.BidID)
		}
		w := bid.Wagers[0]

		gt := w.GameType
		if req.GameType != nil {
			gt = *req.GameType
		}
		if !market.Allows(gt) {
			return errs.Validation("game type %q is not offered in this market", gt)
		}

		amount := w.Amount
		if req.Amount != nil {
			if amount, err = limits.CheckAmount(*req.Amount); err != nil {
				return err
			}
		}

		p, err := wager.Parse(gt, mergeFields(gt, w, req))
		if err != nil {
			return err
		}

		rawSession := string(w.Session)
		if req.Session != nil {
			rawSession = *req.Session
		}
		sess, err := wager.ResolveSession(market, gt, rawSession)
		if err != nil {
			return err
		}
		if err := wager.CheckLeg(p, sess); err != nil {
			return err
		}
		if err := s.checkUnsettled(tx, &bid, &w, gt, sess); err != nil {
			return err
		}

		var game models.Game
		if err := tx.Select("name").First(&game, w.GameID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Internal(err, "load game")
		}

		delta := amount - w.Amount
		desc := "bid update: " + Describe(game.Name, gt, sess, p)
		var trx *models.Transaction
		switch {
		case delta > 0:
			trx, err = ledger.Debit(tx, user, delta, desc)
		case delta < 0:
			trx, err = ledger.Credit(tx, user, -delta, desc)
		}
		if err != nil {
			return err
		}

		w.GameType = gt
		w.Amount = amount
		w.Session = sess
		wager.Apply(&w, p)
		if err := tx.Save(&w).Error; err != nil {
			return errs.Internal(err, "save wager")
		}
		if delta != 0 {
			if err := tx.Model(&bid).Update("total_amount", bid.TotalAmount+delta).Error; err != nil {
				return errs.Internal(err, "save bid")
			}
		}

		out = &UpdateResult{Wager: w, Delta: delta, NewBalance: user.Balance}
		if trx != nil {
			out.TransactionID = trx.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"market": market,
		"bid_id": req.BidID,
		"delta":  out.Delta,
	}).Info("bid updated")
	return out, nil
}

// checkUnsettled refuses edits to a wager that already won, or whose game has a
// declared result for the bid date in any session the wager takes part in.
func (s *Service) checkUnsettled(tx *gorm.DB, bid *models.Bid, w *models.Wager, gt models.GameType, sess models.Session) error {
	var paid int64
	if err := tx.Model(&models.Winner{}).Where("wager_id = ?", w.ID).Count(&paid).Error; err != nil {
		return errs.Internal(err, "check winners")
	}
	if paid > 0 {
		return errs.Business("wager %d has already been paid", w.ID)
	}

	q := tx.Model(&models.Result{}).
		Where("market = ? AND date = ? AND game_id = ?", bid.Market, s.clock.DateOf(bid.CreatedAt), w.GameID)
	// half-sangam and unsessioned wagers settle against either session
	anySession := w.GameType == models.HalfSangam || gt == models.HalfSangam ||
		w.Session == models.SessionNone || sess == models.SessionNone
	if !anySession {
		q = q.Where("session IN ?", []models.Session{w.Session, sess})
	}

	var declared int64
	if err := q.Count(&declared).Error; err != nil {
		return errs.Internal(err, "check results")
	}
	if declared > 0 {
		return errs.Business("result already declared for this wager")
	}
	return nil
}

func mergeFields(gt models.GameType, w models.Wager, req UpdateRequest) wager.Fields {
	f := wager.Fields{
		Digit:      w.Digit,
		Panna:      w.Panna,
		OpenPanna:  w.OpenPanna,
		ClosePanna: w.ClosePanna,
	}
	if req.Digit != nil {
		f.Digit = *req.Digit
	}
	if req.Panna != nil {
		f.Panna = *req.Panna
	}
	if req.OpenPanna != nil {
		f.OpenPanna = *req.OpenPanna
	}
	if req.ClosePanna != nil {
		f.ClosePanna = *req.ClosePanna
	}

	// a half-sangam switching legs drops the leg it no longer uses
	if gt == models.HalfSangam {
		if req.OpenPanna != nil && req.ClosePanna == nil {
			f.ClosePanna = ""
		}
		if req.ClosePanna != nil && req.OpenPanna == nil {
			f.OpenPanna = ""
		}
	}
	return f
}
