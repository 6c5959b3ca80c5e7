package catalog

import (
	"context"
	"errors"
	"fmt"

	"sportsbet/engine"
	"sportsbet/models"

	"gorm.io/gorm"
)

// Reader serves point-in-time snapshots straight from the catalog
// tables. The catalog service owns the rows; no caching here.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

func (r *Reader) Event(ctx context.Context, id uint) (*engine.EventSnapshot, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read event %d: %w", id, err)
	}
	return &engine.EventSnapshot{
		Name:         event.Name,
		CurrentPrice: event.CurrentPrice,
		IsSuspended:  event.IsSuspended,
	}, nil
}

func (r *Reader) Market(ctx context.Context, id uint) (*engine.MarketSnapshot, error) {
	var market models.Market
	err := r.db.WithContext(ctx).First(&market, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read market %d: %w", id, err)
	}
	return &engine.MarketSnapshot{
		Name:        market.Name,
		IsSuspended: market.IsSuspended,
	}, nil
}

func (r *Reader) Game(ctx context.Context, id uint) (*engine.GameSnapshot, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read game %d: %w", id, err)
	}
	return &engine.GameSnapshot{
		Team1Name: game.Team1Name,
		Team2Name: game.Team2Name,
		IsLive:    game.IsLive,
		IsBlocked: game.IsBlocked,
	}, nil
}
