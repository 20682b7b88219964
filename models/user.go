package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name         string        `gorm:"size:128" json:"name"`
	Phone        string        `gorm:"size:32;index" json:"phone"`
	Balance      int64         `json:"balance"`
	IsBlocked    bool          `json:"is_blocked"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}

type TrxType string

const (
	TrxDebit  TrxType = "debit"
	TrxCredit TrxType = "credit"
)

const TrxSuccess = "success"

// Transaction is an append-only ledger row. It is never updated or deleted.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID        uint    `gorm:"index" json:"user_id"`
	Amount        int64   `json:"amount"`
	Type          TrxType `gorm:"size:8;index" json:"type"`
	Status        string  `gorm:"size:16" json:"status"`
	BalanceBefore int64   `json:"balance_before"`
	BalanceAfter  int64   `json:"balance_after"`
	Description   string  `gorm:"size:255" json:"description"`
	RefID         string  `gorm:"size:64;uniqueIndex" json:"ref_id"`
}
