package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Result is a declared outcome. One per (market, date, game, session).
type Result struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Market     Market  `gorm:"size:16;uniqueIndex:idx_result_slot" json:"market"`
	Date       string  `gorm:"size:10;uniqueIndex:idx_result_slot" json:"date"`
	GameID     uint    `gorm:"uniqueIndex:idx_result_slot" json:"game_id"`
	Session    Session `gorm:"size:8;uniqueIndex:idx_result_slot" json:"session,omitempty"`
	Panna      string  `gorm:"size:3" json:"panna,omitempty"`
	Digit      string  `gorm:"size:2" json:"digit"`
	DeclaredBy string  `gorm:"size:64" json:"declared_by,omitempty"`

	Winners []Winner `gorm:"foreignKey:ResultID" json:"winners,omitempty"`
}

type Winner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ResultID       uint            `gorm:"index" json:"result_id"`
	UserID         uint            `gorm:"index" json:"user_id"`
	GameID         uint            `json:"game_id"`
	BidID          uint            `json:"bid_id"`
	WagerID        uint            `gorm:"index" json:"wager_id"`
	GameType       GameType        `gorm:"size:24" json:"game_type"`
	Session        Session         `gorm:"size:8" json:"session,omitempty"`
	Digit          string          `gorm:"size:2" json:"digit,omitempty"`
	Panna          string          `gorm:"size:3" json:"panna,omitempty"`
	OpenPanna      string          `gorm:"size:3" json:"open_panna,omitempty"`
	ClosePanna     string          `gorm:"size:3" json:"close_panna,omitempty"`
	StakeAmount    int64           `json:"stake_amount"`
	WinningAmount  decimal.Decimal `gorm:"type:numeric(14,2)" json:"winning_amount"`
	CreditedAmount int64           `json:"credited_amount"`
	TransactionID  uint            `json:"transaction_id"`
	ResultDate     string          `gorm:"size:10" json:"result_date"`
}
