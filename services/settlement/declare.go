package settlement

import (
	"context"
	"errors"
	"fmt"

	"matka/database"
	"matka/errs"
	"matka/models"
	"matka/services/ledger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DeclareRequest struct {
	Declaration
	// Winners is the list the operator confirmed; when present it must match the recomputed set.
	Winners    []WinnerRow `json:"winners"`
	DeclaredBy string      `json:"-"`
}

type Declared struct {
	Result         models.Result   `json:"result"`
	WinnerCount    int             `json:"winnerCount"`
	TotalBidAmount int64           `json:"totalBidAmount"`
	TotalWinAmount decimal.Decimal `json:"totalWinAmount"`
	TotalCredited  int64           `json:"totalCredited"`
}

// Declare records a result, persists its winners and credits their balances
// in a single unit of work.
func (e *Engine) Declare(ctx context.Context, market models.Market, req DeclareRequest) (*Declared, error) {
	var out *Declared
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := e.resolve(tx, market, req.Declaration)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Result{}).
			Where("market = ? AND date = ? AND game_id = ? AND session = ?", market, sl.date, sl.game.ID, sl.session).
			Count(&existing).Error; err != nil {
			return errs.Internal(err, "check result")
		}
		if existing > 0 {
			return errs.Business("result already declared for %s on %s", sl.game.Name, sl.date)
		}

		result := models.Result{
			Market:     market,
			Date:       sl.date,
			GameID:     sl.game.ID,
			Session:    sl.session,
			Panna:      sl.panna,
			Digit:      sl.digit,
			DeclaredBy: req.DeclaredBy,
		}
		if err := tx.Create(&result).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return errs.Business("result already declared for %s on %s", sl.game.Name, sl.date)
			}
			return errs.Internal(err, "create result")
		}

		preview, err := e.evaluate(tx, sl)
		if err != nil {
			return err
		}
		if req.Winners != nil && !sameWinners(req.Winners, preview) {
			return errs.Business("winner list is stale, run the preview again")
		}

		users := map[uint]*models.User{}
		var credited int64
		for _, w := range preview.Winners {
			user := users[w.UserID]
			if user == nil {
				if user, err = ledger.LockUser(tx, w.UserID); err != nil {
					return err
				}
				users[w.UserID] = user
			}

			row := models.Winner{
				ResultID:       result.ID,
				UserID:         w.UserID,
				GameID:         w.GameID,
				BidID:          w.BidID,
				WagerID:        w.WagerID,
				GameType:       w.GameType,
				Session:        w.Session,
				Digit:          w.Digit,
				Panna:          w.Panna,
				OpenPanna:      w.OpenPanna,
				ClosePanna:     w.ClosePanna,
				StakeAmount:    w.StakeAmount,
				WinningAmount:  w.WinningAmount,
				CreditedAmount: w.WinningAmount.Floor().IntPart(),
				ResultDate:     sl.date,
			}
			if row.CreditedAmount > 0 {
				desc := fmt.Sprintf("%s %s winning %s", w.GameName, w.GameType, sl.date)
				trx, err := ledger.Credit(tx, user, row.CreditedAmount, desc)
				if err != nil {
					return err
				}
				row.TransactionID = trx.ID
				credited += row.CreditedAmount
			}
			if err := tx.Create(&row).Error; err != nil {
				return errs.Internal(err, "create winner")
			}
		}

		out = &Declared{
			Result:         result,
			WinnerCount:    len(preview.Winners),
			TotalBidAmount: preview.TotalBidAmount,
			TotalWinAmount: preview.TotalWinAmount,
			TotalCredited:  credited,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"market":   market,
		"game_id":  out.Result.GameID,
		"date":     out.Result.Date,
		"session":  out.Result.Session,
		"winners":  out.WinnerCount,
		"credited": out.TotalCredited,
	}).Info("result declared")
	return out, nil
}

func sameWinners(given []WinnerRow, p *Preview) bool {
	if len(given) != len(p.Winners) {
		return false
	}
	total := decimal.Zero
	for _, w := range given {
		total = total.Add(w.WinningAmount)
	}
	return total.Equal(p.TotalWinAmount)
}

type Revoked struct {
	ResultID       uint  `json:"resultId"`
	WinnersRemoved int   `json:"winnersRemoved"`
	AmountReversed int64 `json:"amountReversed"`
}

// DeleteResult removes one declared result, its winners and the credits they received.
func (e *Engine) DeleteResult(ctx context.Context, market models.Market, id uint, sessionType string) (*Revoked, error) {
	if id == 0 {
		return nil, errs.Validation("id is required")
	}

	var out *Revoked
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var result models.Result
		err := tx.Where("id = ? AND market = ?", id, market).First(&result).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("result %d not found", id)
		}
		if err != nil {
			return errs.Internal(err, "load result")
		}
		if sessionType != "" {
			s, ok := models.ParseSession(sessionType)
			if !ok || s != result.Session {
				return errs.Validation("sessionType does not match the result")
			}
		}

		var winners []models.Winner
		if err := tx.Where("result_id = ?", result.ID).Order("id").Find(&winners).Error; err != nil {
			return errs.Internal(err, "load winners")
		}

		users := map[uint]*models.User{}
		var reversed int64
		for _, w := range winners {
			if w.CreditedAmount <= 0 {
				continue
			}
			user := users[w.UserID]
			if user == nil {
				if user, err = ledger.LockUser(tx, w.UserID); err != nil {
					return err
				}
				users[w.UserID] = user
			}
			desc := fmt.Sprintf("%s winning reversed %s", w.GameType, w.ResultDate)
			if _, err := ledger.ForceDebit(tx, user, w.CreditedAmount, desc); err != nil {
				return err
			}
			reversed += w.CreditedAmount
		}

		if err := tx.Where("result_id = ?", result.ID).Delete(&models.Winner{}).Error; err != nil {
			return errs.Internal(err, "delete winners")
		}
		if err := tx.Delete(&result).Error; err != nil {
			return errs.Internal(err, "delete result")
		}

		out = &Revoked{ResultID: result.ID, WinnersRemoved: len(winners), AmountReversed: reversed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"market":    market,
		"result_id": out.ResultID,
		"reversed":  out.AmountReversed,
	}).Info("result deleted")
	return out, nil
}
