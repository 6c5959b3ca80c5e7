package engine

import (
	"context"
	"fmt"
	"log"

	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Place validates the wager, then commits it atomically: inside one
// unit of work the catalog is re-read, the wallet row locked, the
// stake debited, and the bet, its selections, and one ledger entry
// inserted. Validation numbers are advisory only; the committed price
// is whatever is current at commit time.
func (e *Engine) Place(ctx context.Context, userID uint, req WagerRequest) (*models.Bet, error) {
	if req.Source == "" {
		req.Source = models.BetSourceMain
	}

	res := e.Validate(ctx, userID, req)
	if !res.Valid {
		return nil, &ValidationError{Reasons: res.Errors}
	}

	var bet models.Bet
	var wallet *models.Wallet

	err := e.store.InTx(ctx, func(tx StoreTx) error {
		// Re-read the current catalog state; this closes the
		// check-then-act window between validation and commit.
		selections, totalOdds, bonusPercent, err := e.resolveSelections(ctx, req)
		if err != nil {
			return err
		}

		uplift := decimal.NewFromInt(1).Add(bonusPercent.Div(decimal.NewFromInt(100)))
		potentialWin := req.Stake.Mul(totalOdds).Mul(uplift).Round(2)

		bet = models.Bet{
			UserID:        userID,
			BetType:       req.BetType,
			SystemVariant: req.SystemVariant,
			Stake:         req.Stake,
			TotalOdds:     totalOdds,
			PotentialWin:  potentialWin,
			BonusPercent:  bonusPercent,
			Status:        models.BetStatusPending,
			Source:        req.Source,
			BookingCode:   helpers.GenerateBookingCode(),
			CashoutAmount: decimal.Zero,
			Selections:    selections,
		}

		// The wallet row lock is the serialization point that prevents
		// double-spend across concurrent placements for the same user.
		w, err := tx.LockWallet(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}
		if w == nil {
			return ErrWalletNotFound
		}

		before := w.AvailableFor(req.Source)
		if before.LessThan(req.Stake) {
			return ErrInsufficientBalance
		}
		after := before.Sub(req.Stake)

		if req.Source == models.BetSourceBonus {
			w.BonusBalance = after
		} else {
			w.Balance = after
		}
		if err := tx.UpdateWallet(ctx, w); err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}

		if err := tx.CreateBet(ctx, &bet); err != nil {
			return fmt.Errorf("create bet: %w", err)
		}

		meta := datatypes.JSON(fmt.Sprintf(`{"bet_id":%d,"booking_code":%q}`, bet.ID, bet.BookingCode))
		entry := models.Transaction{
			UserID:        userID,
			TrxType:       models.TransactionTypeBet,
			Amount:        req.Stake.Neg(),
			BalanceBefore: before,
			BalanceAfter:  after,
			Currency:      w.Currency,
			Status:        "completed",
			RefID:         uuid.New().String(),
			Metadata:      meta,
		}
		if err := tx.AppendLedger(ctx, &entry); err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}

		wallet = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit side effects are best-effort; the committed bet is
	// the source of truth.
	if e.codes != nil {
		if err := e.codes.SavePlacedBet(ctx, bet.BookingCode, bet.ID, userID); err != nil {
			log.Printf("⚠️  Failed to cache booking code %s: %v", bet.BookingCode, err)
		}
	}
	if e.events != nil {
		if err := e.events.BetPlaced(ctx, userID, bet.ID, bet.BookingCode); err != nil {
			log.Printf("⚠️  Failed to publish bet:placed for bet %d: %v", bet.ID, err)
		}
		if err := e.events.BalanceUpdate(ctx, userID, wallet.Balance, wallet.BonusBalance); err != nil {
			log.Printf("⚠️  Failed to publish balance:update for user %d: %v", userID, err)
		}
	}

	return &bet, nil
}

// resolveSelections re-reads the current catalog state for every
// selection and recomputes totals from those fresh values.
func (e *Engine) resolveSelections(ctx context.Context, req WagerRequest) ([]models.BetSelection, decimal.Decimal, decimal.Decimal, error) {
	rule, err := e.rules.Rule(ctx, req.BetType)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("load betting rule: %w", err)
	}

	selections := make([]models.BetSelection, 0, len(req.Selections))
	totalOdds := decimal.NewFromInt(1)
	eligible := 0

	for _, sel := range req.Selections {
		event, err := e.catalog.Event(ctx, sel.EventID)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("read event %d: %w", sel.EventID, err)
		}
		market, merr := e.catalog.Market(ctx, sel.MarketID)
		if merr != nil {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("read market %d: %w", sel.MarketID, merr)
		}
		game, gerr := e.catalog.Game(ctx, sel.GameID)
		if gerr != nil {
			return nil, decimal.Zero, decimal.Zero, fmt.Errorf("read game %d: %w", sel.GameID, gerr)
		}
		if event == nil || market == nil || game == nil {
			return nil, decimal.Zero, decimal.Zero,
				&ValidationError{Reasons: []string{fmt.Sprintf("Event %d is no longer available", sel.EventID)}}
		}
		if event.IsSuspended || market.IsSuspended || game.IsBlocked {
			return nil, decimal.Zero, decimal.Zero,
				&ValidationError{Reasons: []string{fmt.Sprintf("Event %q is suspended", event.Name)}}
		}

		totalOdds = totalOdds.Mul(event.CurrentPrice)
		if rule == nil || event.CurrentPrice.GreaterThanOrEqual(rule.MinOdds) {
			eligible++
		}

		selections = append(selections, models.BetSelection{
			GameID:          sel.GameID,
			MarketID:        sel.MarketID,
			EventID:         sel.EventID,
			Team1Name:       game.Team1Name,
			Team2Name:       game.Team2Name,
			MarketName:      market.Name,
			EventName:       event.Name,
			OddsAtPlacement: event.CurrentPrice,
			Outcome:         models.OutcomePending,
			IsLive:          game.IsLive,
		})
	}

	bonusPercent := decimal.Zero
	if req.BetType == models.BetTypeMultiple && eligible >= minBonusSelections {
		bonusPercent = AccumulatorBonusPercent(eligible)
	}

	return selections, totalOdds, bonusPercent, nil
}
