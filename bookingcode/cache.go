package bookingcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sportsbet/helpers"

	"github.com/shopspring/decimal"
)

// ErrCodeNotFound covers unknown codes, expired temporary codes, and
// lookups against the wrong keyspace. Stale payloads are never served.
var ErrCodeNotFound = errors.New("booking code not found")

const (
	permanentPrefix = "booking:"
	temporaryPrefix = "booking:temp:"

	permanentTTL = 7 * 24 * time.Hour
	temporaryTTL = 24 * time.Hour
)

// Store is the minimal TTL key/value surface the cache needs. Backed by
// Redis in production; tests use an in-memory implementation.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetIfAbsent writes only when the key does not exist yet and
	// reports whether the write happened.
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// Cache maps human-shareable booking codes to placed bets (permanent
// keyspace) or saved, unplaced betslips (temporary keyspace). The two
// keyspaces never resolve each other's codes.
type Cache struct {
	store    Store
	generate func() string
}

func New(store Store) *Cache {
	return &Cache{store: store, generate: helpers.GenerateBookingCode}
}

// PlacedBetRef points a permanent code at a committed bet.
type PlacedBetRef struct {
	BetID  uint `json:"bet_id"`
	UserID uint `json:"user_id"`
}

// SavedSelection is one leg of a saved, unplaced betslip.
type SavedSelection struct {
	GameID   uint            `json:"game_id"`
	MarketID uint            `json:"market_id"`
	EventID  uint            `json:"event_id"`
	Odds     decimal.Decimal `json:"odds"`
}

// SavedSlip is the full snapshot stored behind a temporary code. The
// expiry timestamp duplicates the key TTL so clients can display it.
type SavedSlip struct {
	BetType    string           `json:"bet_type"`
	Stake      decimal.Decimal  `json:"stake"`
	TotalOdds  decimal.Decimal  `json:"total_odds"`
	Selections []SavedSelection `json:"selections"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

// SavePlacedBet writes the permanent cache entry for a placed bet.
// Called once, post-commit; the code itself lives on the bet row.
func (c *Cache) SavePlacedBet(ctx context.Context, code string, betID, userID uint) error {
	payload, err := json.Marshal(PlacedBetRef{BetID: betID, UserID: userID})
	if err != nil {
		return fmt.Errorf("marshal booking ref: %w", err)
	}
	return c.store.Set(ctx, permanentPrefix+code, payload, permanentTTL)
}

// ResolvePlacedBet resolves a permanent code to its bet identity.
func (c *Cache) ResolvePlacedBet(ctx context.Context, code string) (*PlacedBetRef, error) {
	raw, err := c.store.Get(ctx, permanentPrefix+code)
	if err != nil {
		return nil, err
	}
	var ref PlacedBetRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return nil, fmt.Errorf("unmarshal booking ref: %w", err)
	}
	return &ref, nil
}

// How many generated codes to try before giving up on a slip save.
const maxCodeAttempts = 5

// SaveSlip stores an unplaced selection set under a freshly generated
// temporary code and returns the code. Codes are claimed with a
// set-if-absent write so a collision picks a new code instead of
// overwriting someone else's slip.
func (c *Cache) SaveSlip(ctx context.Context, slip SavedSlip) (string, error) {
	slip.ExpiresAt = time.Now().Add(temporaryTTL)

	payload, err := json.Marshal(slip)
	if err != nil {
		return "", fmt.Errorf("marshal betslip: %w", err)
	}

	for i := 0; i < maxCodeAttempts; i++ {
		code := c.generate()
		ok, err := c.store.SetIfAbsent(ctx, temporaryPrefix+code, payload, temporaryTTL)
		if err != nil {
			return "", err
		}
		if ok {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a free booking code after %d attempts", maxCodeAttempts)
}

// ResolveSlip resolves a temporary code. Expired or unknown codes are a
// not-found condition, never a stale payload.
func (c *Cache) ResolveSlip(ctx context.Context, code string) (*SavedSlip, error) {
	raw, err := c.store.Get(ctx, temporaryPrefix+code)
	if err != nil {
		return nil, err
	}
	var slip SavedSlip
	if err := json.Unmarshal(raw, &slip); err != nil {
		return nil, fmt.Errorf("unmarshal betslip: %w", err)
	}
	if time.Now().After(slip.ExpiresAt) {
		return nil, ErrCodeNotFound
	}
	return &slip, nil
}
