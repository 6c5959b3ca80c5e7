package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Stream consumed by the external fan-out layer (ws broadcaster).
const wagerStream = "events:wagers"

// Publisher emits post-commit notifications to a Redis stream. Callers
// treat failures as best-effort: log and move on.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

type betPlacedPayload struct {
	UserID      uint   `json:"user_id"`
	BetID       uint   `json:"bet_id"`
	BookingCode string `json:"booking_code"`
	Status      string `json:"status"`
}

type balanceUpdatePayload struct {
	UserID       uint            `json:"user_id"`
	Balance      decimal.Decimal `json:"balance"`
	BonusBalance decimal.Decimal `json:"bonus_balance"`
}

func (p *Publisher) BetPlaced(ctx context.Context, userID, betID uint, bookingCode string) error {
	return p.publish(ctx, "bet:placed", betPlacedPayload{
		UserID:      userID,
		BetID:       betID,
		BookingCode: bookingCode,
		Status:      "pending",
	})
}

func (p *Publisher) BalanceUpdate(ctx context.Context, userID uint, balance, bonusBalance decimal.Decimal) error {
	return p.publish(ctx, "balance:update", balanceUpdatePayload{
		UserID:       userID,
		Balance:      balance,
		BonusBalance: bonusBalance,
	})
}

func (p *Publisher) publish(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", event, err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: wagerStream,
		Values: map[string]interface{}{
			"type": event,
			"data": string(data),
		},
	}).Err()
}
