package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BetType string

const (
	BetTypeSingle   BetType = "single"
	BetTypeMultiple BetType = "multiple"
	BetTypeSystem   BetType = "system"
	BetTypeChain    BetType = "chain"
)

type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusCashout   BetStatus = "cashout"
	BetStatusCancelled BetStatus = "cancelled"
	BetStatusReturned  BetStatus = "returned"
)

type BetSource string

const (
	BetSourceMain  BetSource = "main_balance"
	BetSourceBonus BetSource = "bonus_balance"
)

type SelectionOutcome string

const (
	OutcomePending  SelectionOutcome = "pending"
	OutcomeWon      SelectionOutcome = "won"
	OutcomeLost     SelectionOutcome = "lost"
	OutcomeReturned SelectionOutcome = "returned"
)

type Bet struct {
	gorm.Model

	UserID        uint            `gorm:"index;not null" json:"user_id"`
	BetType       BetType         `gorm:"size:16;not null" json:"bet_type"`
	SystemVariant string          `gorm:"size:16" json:"system_variant,omitempty"`
	Stake         decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"stake"`
	TotalOdds     decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"total_odds"`
	PotentialWin  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"potential_win"`
	BonusPercent  decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0" json:"bonus_percent"`
	Status        BetStatus       `gorm:"size:16;index;not null" json:"status"`
	Source        BetSource       `gorm:"size:16;not null" json:"source"`
	BookingCode   string          `gorm:"size:16;uniqueIndex;not null" json:"booking_code"`
	CashoutAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"cashout_amount"`
	SettledAt     *time.Time      `json:"settled_at,omitempty"`

	Selections []BetSelection `gorm:"foreignKey:BetID;constraint:OnDelete:CASCADE" json:"selections"`
}

// BetSelection is one leg of a bet. Display fields are captured at
// placement time and never follow later catalog renames. Outcome is
// flipped by the external settlement process only.
type BetSelection struct {
	gorm.Model

	BetID    uint `gorm:"index;not null" json:"bet_id"`
	GameID   uint `gorm:"index;not null" json:"game_id"`
	MarketID uint `gorm:"not null" json:"market_id"`
	EventID  uint `gorm:"not null" json:"event_id"`

	Team1Name  string `gorm:"size:128" json:"team1_name"`
	Team2Name  string `gorm:"size:128" json:"team2_name"`
	MarketName string `gorm:"size:128" json:"market_name"`
	EventName  string `gorm:"size:128" json:"event_name"`

	OddsAtPlacement decimal.Decimal  `gorm:"type:numeric(18,4);not null" json:"odds_at_placement"`
	Outcome         SelectionOutcome `gorm:"size:16;not null;default:'pending'" json:"outcome"`
	IsLive          bool             `gorm:"not null;default:false" json:"is_live"`
}

// IsTerminal reports whether the bet can no longer change state. A bet
// in cashout status is terminal only when fully cashed out; partial
// cashouts keep the bet pending and never reach this status.
func (s BetStatus) IsTerminal() bool {
	switch s {
	case BetStatusWon, BetStatusLost, BetStatusCashout, BetStatusCancelled, BetStatusReturned:
		return true
	}
	return false
}
