package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"sportsbet/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Fixed house-edge discount applied to every cashout value.
var cashoutRiskFactor = decimal.NewFromFloat(0.85)

type CashoutType string

const (
	CashoutFull    CashoutType = "full"
	CashoutPartial CashoutType = "partial"
)

type CashoutRequest struct {
	Type   CashoutType     `json:"type"`
	Amount decimal.Decimal `json:"amount,omitempty"`
}

type CashoutResult struct {
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Bet        *models.Bet     `json:"bet"`
}

// CashoutValue computes the current surrender value of a bet from its
// selections' settlement progress. This is deliberately a progress-ratio
// surrogate, not a live repricing of each leg.
func CashoutValue(bet *models.Bet) decimal.Decimal {
	total := len(bet.Selections)
	if total == 0 {
		return decimal.Zero
	}

	pending := 0
	won := 0
	for _, sel := range bet.Selections {
		switch sel.Outcome {
		case models.OutcomePending:
			pending++
		case models.OutcomeWon:
			won++
		}
	}
	if pending == 0 {
		return decimal.Zero
	}

	one := decimal.NewFromInt(1)
	progress := decimal.NewFromInt(int64(won)).Div(decimal.NewFromInt(int64(total)))
	value := bet.Stake.Mul(one.Add(bet.TotalOdds.Sub(one).Mul(progress))).Mul(cashoutRiskFactor)
	return value.Round(2)
}

// Valuate returns the cashout quote for one of the caller's pending
// bets. Read-only.
func (e *Engine) Valuate(ctx context.Context, betID, userID uint) (decimal.Decimal, error) {
	bet, err := e.GetBet(ctx, betID, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if bet.Status != models.BetStatusPending {
		return decimal.Zero, ErrInvalidState
	}
	return CashoutValue(bet), nil
}

// GetBet loads one bet with its selections, scoped to the owner.
func (e *Engine) GetBet(ctx context.Context, betID, userID uint) (*models.Bet, error) {
	bet, err := e.store.Bet(ctx, betID, userID)
	if err != nil {
		return nil, fmt.Errorf("load bet %d: %w", betID, err)
	}
	if bet == nil {
		return nil, ErrBetNotFound
	}
	return bet, nil
}

// Cashout settles a pending bet early, in full or in part, crediting
// the main balance inside one atomic unit of work. The bet row is
// locked for the duration so concurrent settlement cannot race the
// valuation.
func (e *Engine) Cashout(ctx context.Context, betID, userID uint, req CashoutRequest) (*CashoutResult, error) {
	if req.Type == CashoutPartial && !req.Amount.IsPositive() {
		return nil, ErrInvalidCashoutAmount
	}

	var bet *models.Bet
	var amount decimal.Decimal
	var wallet *models.Wallet

	err := e.store.InTx(ctx, func(tx StoreTx) error {
		b, err := tx.LockBet(ctx, betID, userID)
		if err != nil {
			return fmt.Errorf("lock bet %d: %w", betID, err)
		}
		if b == nil {
			return ErrBetNotFound
		}
		if b.Status != models.BetStatusPending {
			return ErrInvalidState
		}

		// Selections are read inside the transaction so the value reflects
		// the settlement state the lock protects.
		b.Selections, err = tx.BetSelections(ctx, b.ID)
		if err != nil {
			return fmt.Errorf("load selections: %w", err)
		}

		value := CashoutValue(b)
		if !value.IsPositive() {
			return ErrInvalidState
		}

		amount = value
		if req.Type == CashoutPartial {
			amount = req.Amount
			if amount.GreaterThan(value) {
				amount = value
			}
			applyPartialCashout(b, value, amount)
		} else {
			now := time.Now()
			b.Status = models.BetStatusCashout
			b.CashoutAmount = b.CashoutAmount.Add(amount)
			b.SettledAt = &now
		}

		if err := tx.UpdateBet(ctx, b); err != nil {
			return fmt.Errorf("update bet: %w", err)
		}

		w, err := tx.LockWallet(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}
		if w == nil {
			return ErrWalletNotFound
		}

		before := w.Balance
		w.Balance = before.Add(amount)
		if err := tx.UpdateWallet(ctx, w); err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		meta := datatypes.JSON(fmt.Sprintf(`{"bet_id":%d,"booking_code":%q,"cashout_type":%q}`,
			b.ID, b.BookingCode, req.Type))
		entry := models.Transaction{
			UserID:        userID,
			TrxType:       models.TransactionTypeCashout,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  w.Balance,
			Currency:      w.Currency,
			Status:        "completed",
			RefID:         uuid.New().String(),
			Metadata:      meta,
		}
		if err := tx.AppendLedger(ctx, &entry); err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}

		bet = b
		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	if e.events != nil {
		if err := e.events.BalanceUpdate(ctx, userID, wallet.Balance, wallet.BonusBalance); err != nil {
			log.Printf("⚠️  Failed to publish balance:update for user %d: %v", userID, err)
		}
	}

	return &CashoutResult{Amount: amount, NewBalance: wallet.Balance, Bet: bet}, nil
}

// applyPartialCashout shrinks the live bet proportionally to the slice
// of value taken out; the bet stays pending for the remaining stake.
func applyPartialCashout(bet *models.Bet, fullValue, amount decimal.Decimal) {
	one := decimal.NewFromInt(1)
	remaining := one.Sub(amount.Div(fullValue))
	bet.Stake = bet.Stake.Mul(remaining).Round(2)
	bet.PotentialWin = bet.PotentialWin.Mul(remaining).Round(2)
	bet.CashoutAmount = bet.CashoutAmount.Add(amount)
}
