package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BettingRule is per-bet-type configuration. Read-only from the
// engine's perspective; maintained by the back office.
type BettingRule struct {
	gorm.Model

	BetType       BetType         `gorm:"size:16;uniqueIndex;not null" json:"bet_type"`
	MinSelections int             `gorm:"not null;default:1" json:"min_selections"`
	MaxSelections int             `gorm:"not null;default:30" json:"max_selections"`
	MinOdds       decimal.Decimal `gorm:"type:numeric(18,4);not null;default:1" json:"min_odds"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}
