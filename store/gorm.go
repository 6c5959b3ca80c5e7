package store

import (
	"context"
	"errors"
	"fmt"

	"sportsbet/engine"
	"sportsbet/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm is the database-backed unit-of-work store behind placement and
// cashout. All writes go through InTx; a returned error rolls the
// whole transaction back.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

var _ engine.Store = (*Gorm)(nil)

func (s *Gorm) InTx(ctx context.Context, fn func(engine.StoreTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

func (s *Gorm) Bet(ctx context.Context, betID, userID uint) (*models.Bet, error) {
	var bet models.Bet
	err := s.db.WithContext(ctx).Preload("Selections").
		Where("id = ? AND user_id = ?", betID, userID).First(&bet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bet %d: %w", betID, err)
	}
	return &bet, nil
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) LockWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

func (t *gormTx) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	return t.db.WithContext(ctx).Save(wallet).Error
}

func (t *gormTx) CreateBet(ctx context.Context, bet *models.Bet) error {
	return t.db.WithContext(ctx).Create(bet).Error
}

func (t *gormTx) LockBet(ctx context.Context, betID, userID uint) (*models.Bet, error) {
	var bet models.Bet
	err := t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", betID, userID).First(&bet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock bet %d: %w", betID, err)
	}
	return &bet, nil
}

func (t *gormTx) BetSelections(ctx context.Context, betID uint) ([]models.BetSelection, error) {
	var selections []models.BetSelection
	err := t.db.WithContext(ctx).Where("bet_id = ?", betID).Order("id").Find(&selections).Error
	if err != nil {
		return nil, fmt.Errorf("read selections for bet %d: %w", betID, err)
	}
	return selections, nil
}

func (t *gormTx) UpdateBet(ctx context.Context, bet *models.Bet) error {
	// Selections belong to the settlement process; never write them back.
	return t.db.WithContext(ctx).Omit(clause.Associations).Save(bet).Error
}

func (t *gormTx) AppendLedger(ctx context.Context, entry *models.Transaction) error {
	return t.db.WithContext(ctx).Create(entry).Error
}
