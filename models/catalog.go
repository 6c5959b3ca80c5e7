package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog tables. The catalog service owns these rows and their live
// odds; the engine only reads the current committed state at call time.

type Game struct {
	gorm.Model

	Team1Name string   `gorm:"size:128" json:"team1_name"`
	Team2Name string   `gorm:"size:128" json:"team2_name"`
	IsLive    bool     `gorm:"not null;default:false" json:"is_live"`
	IsBlocked bool     `gorm:"not null;default:false" json:"is_blocked"`
	Markets   []Market `gorm:"foreignKey:GameID" json:"markets,omitempty"`
}

type Market struct {
	gorm.Model

	GameID      uint    `gorm:"index;not null" json:"game_id"`
	Name        string  `gorm:"size:128" json:"name"`
	IsSuspended bool    `gorm:"not null;default:false" json:"is_suspended"`
	Events      []Event `gorm:"foreignKey:MarketID" json:"events,omitempty"`
}

type Event struct {
	gorm.Model

	MarketID     uint            `gorm:"index;not null" json:"market_id"`
	Name         string          `gorm:"size:128" json:"name"`
	CurrentPrice decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"current_price"`
	IsSuspended  bool            `gorm:"not null;default:false" json:"is_suspended"`
}
