package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Bid struct {
	gorm.Model

	Reference       string                    `gorm:"size:36;uniqueIndex" json:"reference"`
	Market          Market                    `gorm:"size:16;index" json:"market"`
	UserID          uint                      `gorm:"index" json:"user_id"`
	TotalAmount     int64                     `json:"total_amount"`
	TransactionRefs datatypes.JSONSlice[uint] `json:"transaction_refs"`
	Wagers          []Wager                   `gorm:"foreignKey:BidID" json:"wagers"`
}

// Wager is one line of a bid. Only the fields its game type uses are set.
type Wager struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BidID         uint     `gorm:"index" json:"bid_id"`
	Position      int      `json:"position"`
	GameID        uint     `gorm:"index" json:"game_id"`
	GameType      GameType `gorm:"size:24;index" json:"game_type"`
	Amount        int64    `json:"amount"`
	Session       Session  `gorm:"size:8" json:"session,omitempty"`
	Digit         string   `gorm:"size:2" json:"digit,omitempty"`
	Panna         string   `gorm:"size:3" json:"panna,omitempty"`
	OpenPanna     string   `gorm:"size:3" json:"open_panna,omitempty"`
	ClosePanna    string   `gorm:"size:3" json:"close_panna,omitempty"`
	TransactionID uint     `json:"transaction_id"`
}
