package store

import (
	"context"
	"errors"
	"fmt"

	"sportsbet/engine"
	"sportsbet/models"

	"gorm.io/gorm"
)

// Rules resolves per-bet-type betting rules. Inactive rules behave as
// if no rule is configured.
type Rules struct {
	db *gorm.DB
}

func NewRules(db *gorm.DB) *Rules {
	return &Rules{db: db}
}

var _ engine.RuleResolver = (*Rules)(nil)

func (r *Rules) Rule(ctx context.Context, betType models.BetType) (*models.BettingRule, error) {
	var rule models.BettingRule
	err := r.db.WithContext(ctx).
		Where("bet_type = ? AND is_active = true", betType).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read betting rule for %s: %w", betType, err)
	}
	return &rule, nil
}

// Wallets is the read-only wallet view used by validation.
type Wallets struct {
	db *gorm.DB
}

func NewWallets(db *gorm.DB) *Wallets {
	return &Wallets{db: db}
}

var _ engine.WalletReader = (*Wallets)(nil)

func (w *Wallets) Wallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := w.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}
