// Package ledger owns user balances. Every balance change goes through post,
// which writes the paired Transaction row in the same unit of work.
package ledger

import (
	"context"
	"errors"

	"matka/errs"
	"matka/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockUser loads a user row FOR UPDATE inside tx.
func LockUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("user %d not found", userID)
	}
	if err != nil {
		return nil, errs.Internal(err, "lock user")
	}
	return &user, nil
}

// Debit removes amount from a locked user, refusing to go below zero.
func Debit(tx *gorm.DB, user *models.User, amount int64, description string) (*models.Transaction, error) {
	if user.Balance < amount {
		return nil, errs.Business("insufficient balance")
	}
	return post(tx, user, models.TrxDebit, amount, description)
}

// ForceDebit removes amount even if the balance goes negative. Used to reverse winnings.
func ForceDebit(tx *gorm.DB, user *models.User, amount int64, description string) (*models.Transaction, error) {
	if user.Balance < amount {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"balance": user.Balance,
			"amount":  amount,
		}).Warn("reversal leaves balance negative")
	}
	return post(tx, user, models.TrxDebit, amount, description)
}

func Credit(tx *gorm.DB, user *models.User, amount int64, description string) (*models.Transaction, error) {
	return post(tx, user, models.TrxCredit, amount, description)
}

func post(tx *gorm.DB, user *models.User, trxType models.TrxType, amount int64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, errs.Validation("transaction amount must be positive")
	}

	before := user.Balance
	after := before + amount
	if trxType == models.TrxDebit {
		after = before - amount
	}

	if err := tx.Model(user).Update("balance", after).Error; err != nil {
		return nil, errs.Internal(err, "update balance")
	}
	user.Balance = after

	trx := models.Transaction{
		UserID:        user.ID,
		Amount:        amount,
		Type:          trxType,
		Status:        models.TrxSuccess,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		RefID:         uuid.NewString(),
	}
	if err := tx.Create(&trx).Error; err != nil {
		return nil, errs.Internal(err, "write transaction")
	}
	return &trx, nil
}

// Statement is a user's balance with recent ledger rows, newest first.
type Statement struct {
	UserID       uint                 `json:"userId"`
	Balance      int64                `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
}

func History(ctx context.Context, db *gorm.DB, userID uint, limit int) (*Statement, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var user models.User
	err := db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("user %d not found", userID)
	}
	if err != nil {
		return nil, errs.Internal(err, "load user")
	}

	var rows []models.Transaction
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, errs.Internal(err, "load transactions")
	}
	return &Statement{UserID: user.ID, Balance: user.Balance, Transactions: rows}, nil
}
