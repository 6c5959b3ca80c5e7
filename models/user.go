package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	UserCode string `gorm:"uniqueIndex;size:32" json:"user_code"`
	Country  string `gorm:"size:64" json:"country"`
	Currency string `gorm:"size:8" json:"currency"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
	Wallet   Wallet `gorm:"foreignKey:UserID" json:"wallet"`
	Bets     []Bet  `gorm:"foreignKey:UserID" json:"-"`
}

// Wallet holds one row per user. Balance mutations go through the
// placement and cashout transactions only, under a row lock.
type Wallet struct {
	gorm.Model

	UserID       uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance"`
	BonusBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"bonus_balance"`
	Currency     string          `gorm:"size:8" json:"currency"`
}

// AvailableFor returns the sub-balance a bet source draws from.
func (w *Wallet) AvailableFor(source BetSource) decimal.Decimal {
	if source == BetSourceBonus {
		return w.BonusBalance
	}
	return w.Balance
}
