package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeBet     TransactionType = "bet"
	TransactionTypeCashout TransactionType = "cashout"
	TransactionTypeWin     TransactionType = "win"
	TransactionTypeRefund  TransactionType = "refund"
)

// Transaction is one append-only ledger row per balance mutation.
// Rows are never updated after insert.
type Transaction struct {
	gorm.Model

	UserID        uint            `gorm:"index;not null" json:"user_id"`
	TrxType       TransactionType `gorm:"size:16;index;not null" json:"trx_type"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_after"`
	Currency      string          `gorm:"size:8" json:"currency"`
	Status        string          `gorm:"size:16;not null;default:'completed'" json:"status"`
	RefID         string          `gorm:"size:64;index" json:"ref_id"`
	Metadata      datatypes.JSON  `gorm:"type:jsonb" json:"metadata,omitempty"`
}
