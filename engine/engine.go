package engine

import (
	"context"

	"sportsbet/models"

	"github.com/shopspring/decimal"
)

// Snapshots are point-in-time reads of the catalog's current committed
// state. The engine never caches them.

type EventSnapshot struct {
	Name         string
	CurrentPrice decimal.Decimal
	IsSuspended  bool
}

type MarketSnapshot struct {
	Name        string
	IsSuspended bool
}

type GameSnapshot struct {
	Team1Name string
	Team2Name string
	IsLive    bool
	IsBlocked bool
}

// CatalogReader resolves catalog entities by id. A (nil, nil) return
// means the entity does not exist; a non-nil error is an infrastructure
// failure.
type CatalogReader interface {
	Event(ctx context.Context, id uint) (*EventSnapshot, error)
	Market(ctx context.Context, id uint) (*MarketSnapshot, error)
	Game(ctx context.Context, id uint) (*GameSnapshot, error)
}

// RuleResolver loads the active betting rule for a bet type, or
// (nil, nil) when no rule is configured.
type RuleResolver interface {
	Rule(ctx context.Context, betType models.BetType) (*models.BettingRule, error)
}

// WalletReader is the read-only wallet view used during validation.
// The placement and cashout transactions lock and read the row
// themselves instead.
type WalletReader interface {
	Wallet(ctx context.Context, userID uint) (*models.Wallet, error)
}

// EventPublisher receives best-effort post-commit notifications for the
// external fan-out layer. Failures are logged and never roll back a
// committed bet.
type EventPublisher interface {
	BetPlaced(ctx context.Context, userID, betID uint, bookingCode string) error
	BalanceUpdate(ctx context.Context, userID uint, balance, bonusBalance decimal.Decimal) error
}

// CodeWriter persists the permanent booking-code cache entry after a
// successful placement.
type CodeWriter interface {
	SavePlacedBet(ctx context.Context, code string, betID, userID uint) error
}

// Store is the persistence boundary for the transactional operations.
// InTx runs fn inside one atomic unit of work: any error returned by
// fn rolls back every write as a unit.
type Store interface {
	InTx(ctx context.Context, fn func(StoreTx) error) error
	// Bet loads one bet with its selections, scoped to the owner.
	// (nil, nil) means no such bet.
	Bet(ctx context.Context, betID, userID uint) (*models.Bet, error)
}

// StoreTx is the transaction-scoped surface: locked wallet and bet
// reads, bet writes, and ledger appends. Lock methods return (nil,
// nil) when the row does not exist.
type StoreTx interface {
	LockWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateBet(ctx context.Context, bet *models.Bet) error
	LockBet(ctx context.Context, betID, userID uint) (*models.Bet, error)
	BetSelections(ctx context.Context, betID uint) ([]models.BetSelection, error)
	UpdateBet(ctx context.Context, bet *models.Bet) error
	AppendLedger(ctx context.Context, entry *models.Transaction) error
}

// Engine is the wagering core. It holds its collaborators explicitly;
// there is no package-level instance.
type Engine struct {
	store   Store
	catalog CatalogReader
	rules   RuleResolver
	wallets WalletReader
	codes   CodeWriter
	events  EventPublisher
}

func New(store Store, catalog CatalogReader, rules RuleResolver, wallets WalletReader, codes CodeWriter, events EventPublisher) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		rules:   rules,
		wallets: wallets,
		codes:   codes,
		events:  events,
	}
}

type OddsPolicy string

const (
	// OddsPolicyNone rejects any price movement.
	OddsPolicyNone OddsPolicy = "none"
	// OddsPolicyHigher rejects prices that moved against the bettor.
	OddsPolicyHigher OddsPolicy = "higher"
	// OddsPolicyAny accepts the current catalog price silently.
	OddsPolicyAny OddsPolicy = "any"
)

type SelectionRequest struct {
	GameID   uint            `json:"game_id"`
	MarketID uint            `json:"market_id"`
	EventID  uint            `json:"event_id"`
	Odds     decimal.Decimal `json:"odds"`
}

type WagerRequest struct {
	BetType           models.BetType     `json:"bet_type"`
	SystemVariant     string             `json:"system_variant,omitempty"`
	Stake             decimal.Decimal    `json:"stake"`
	Source            models.BetSource   `json:"source"`
	AcceptOddsChanges OddsPolicy         `json:"accept_odds_changes"`
	Selections        []SelectionRequest `json:"selections"`
}

// ValidationResult is the structured outcome of a validation pass.
// Warnings never affect validity.
type ValidationResult struct {
	Valid        bool            `json:"valid"`
	Errors       []string        `json:"errors"`
	Warnings     []string        `json:"warnings"`
	TotalOdds    decimal.Decimal `json:"total_odds"`
	PotentialWin decimal.Decimal `json:"potential_win"`
	BonusPercent decimal.Decimal `json:"bonus_percent"`
}
