package engine

import (
	"context"
	"errors"
	"testing"

	"sportsbet/models"

	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory Store whose transactions stage every write
// and discard the whole batch when the closure errors, mirroring the
// rollback behavior of the database-backed store.
type fakeStore struct {
	wallet     *models.Wallet
	bets       map[uint]*models.Bet
	ledger     []models.Transaction
	nextBetID  uint
	failLedger bool
}

func newFakeStore(balance string) *fakeStore {
	return &fakeStore{
		wallet: &models.Wallet{
			UserID:       1,
			Balance:      dec(balance),
			BonusBalance: decimal.Zero,
			Currency:     "EUR",
		},
		bets:      map[uint]*models.Bet{},
		nextBetID: 1,
	}
}

func (s *fakeStore) clone() *fakeStore {
	out := &fakeStore{
		bets:       make(map[uint]*models.Bet, len(s.bets)),
		ledger:     append([]models.Transaction(nil), s.ledger...),
		nextBetID:  s.nextBetID,
		failLedger: s.failLedger,
	}
	if s.wallet != nil {
		w := *s.wallet
		out.wallet = &w
	}
	for id, bet := range s.bets {
		out.bets[id] = cloneBet(bet)
	}
	return out
}

func cloneBet(bet *models.Bet) *models.Bet {
	b := *bet
	b.Selections = append([]models.BetSelection(nil), bet.Selections...)
	return &b
}

func (s *fakeStore) InTx(_ context.Context, fn func(StoreTx) error) error {
	staged := s.clone()
	if err := fn(&fakeTx{store: staged}); err != nil {
		return err
	}
	*s = *staged
	return nil
}

func (s *fakeStore) Bet(_ context.Context, betID, userID uint) (*models.Bet, error) {
	bet, ok := s.bets[betID]
	if !ok || bet.UserID != userID {
		return nil, nil
	}
	return cloneBet(bet), nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) LockWallet(_ context.Context, userID uint) (*models.Wallet, error) {
	if t.store.wallet == nil || t.store.wallet.UserID != userID {
		return nil, nil
	}
	w := *t.store.wallet
	return &w, nil
}

func (t *fakeTx) UpdateWallet(_ context.Context, wallet *models.Wallet) error {
	w := *wallet
	t.store.wallet = &w
	return nil
}

func (t *fakeTx) CreateBet(_ context.Context, bet *models.Bet) error {
	bet.ID = t.store.nextBetID
	t.store.nextBetID++
	t.store.bets[bet.ID] = cloneBet(bet)
	return nil
}

func (t *fakeTx) LockBet(_ context.Context, betID, userID uint) (*models.Bet, error) {
	bet, ok := t.store.bets[betID]
	if !ok || bet.UserID != userID {
		return nil, nil
	}
	b := *bet
	b.Selections = nil
	return &b, nil
}

func (t *fakeTx) BetSelections(_ context.Context, betID uint) ([]models.BetSelection, error) {
	bet, ok := t.store.bets[betID]
	if !ok {
		return nil, nil
	}
	return append([]models.BetSelection(nil), bet.Selections...), nil
}

func (t *fakeTx) UpdateBet(_ context.Context, bet *models.Bet) error {
	updated := *bet
	// Selections are never written back by the engine; keep what the
	// store already holds, as an association-omitting save would.
	if existing, ok := t.store.bets[bet.ID]; ok {
		updated.Selections = existing.Selections
	}
	t.store.bets[bet.ID] = &updated
	return nil
}

func (t *fakeTx) AppendLedger(_ context.Context, entry *models.Transaction) error {
	if t.store.failLedger {
		return errors.New("ledger unavailable")
	}
	t.store.ledger = append(t.store.ledger, *entry)
	return nil
}

// newPlacementEngine wires a validating engine and a fake store over
// the same sequentially numbered catalog as newTestEngine.
func newPlacementEngine(balance string, rule *models.BettingRule, prices ...string) (*Engine, *fakeStore) {
	e := newTestEngine(balance, rule, prices...)
	s := newFakeStore(balance)
	e.store = s
	return e, s
}

func TestPlaceSingleBetDebitsWallet(t *testing.T) {
	e, s := newPlacementEngine("100", nil, "2.5")
	bet, err := e.Place(context.Background(), 1, WagerRequest{
		BetType:           models.BetTypeSingle,
		Stake:             dec("10"),
		Source:            models.BetSourceMain,
		AcceptOddsChanges: OddsPolicyNone,
		Selections:        selections("2.5"),
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if !bet.PotentialWin.Equal(dec("25.00")) {
		t.Errorf("potential win: got %s, want 25.00", bet.PotentialWin)
	}
	if bet.Status != models.BetStatusPending {
		t.Errorf("status: got %s, want pending", bet.Status)
	}
	if bet.BookingCode == "" {
		t.Error("expected a booking code")
	}
	if len(bet.Selections) != 1 || !bet.Selections[0].OddsAtPlacement.Equal(dec("2.5")) {
		t.Errorf("selections: got %+v", bet.Selections)
	}

	if !s.wallet.Balance.Equal(dec("90")) {
		t.Errorf("balance: got %s, want 90", s.wallet.Balance)
	}
	if len(s.ledger) != 1 {
		t.Fatalf("ledger entries: got %d, want 1", len(s.ledger))
	}
	entry := s.ledger[0]
	if entry.TrxType != models.TransactionTypeBet {
		t.Errorf("trx type: got %s", entry.TrxType)
	}
	if !entry.Amount.Equal(dec("-10")) {
		t.Errorf("amount: got %s, want -10", entry.Amount)
	}
	if !entry.BalanceBefore.Equal(dec("100")) || !entry.BalanceAfter.Equal(dec("90")) {
		t.Errorf("balances: got %s → %s, want 100 → 90", entry.BalanceBefore, entry.BalanceAfter)
	}
}

func TestPlaceCommitsCurrentCatalogPrice(t *testing.T) {
	// Submitted at 2.5, catalog has moved to 2.2; policy any lets the
	// bet through, but the committed numbers use the catalog price.
	e, s := newPlacementEngine("100", nil, "2.2")
	bet, err := e.Place(context.Background(), 1, WagerRequest{
		BetType:           models.BetTypeSingle,
		Stake:             dec("10"),
		AcceptOddsChanges: OddsPolicyAny,
		Selections:        selections("2.5"),
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if !bet.TotalOdds.Equal(dec("2.2")) {
		t.Errorf("total odds: got %s, want 2.2", bet.TotalOdds)
	}
	if !bet.Selections[0].OddsAtPlacement.Equal(dec("2.2")) {
		t.Errorf("odds at placement: got %s, want 2.2", bet.Selections[0].OddsAtPlacement)
	}
	if !s.bets[bet.ID].TotalOdds.Equal(dec("2.2")) {
		t.Errorf("stored total odds: got %s", s.bets[bet.ID].TotalOdds)
	}
}

func TestPlaceAppliesBonusAtCommit(t *testing.T) {
	rule := &models.BettingRule{
		BetType:       models.BetTypeMultiple,
		MinSelections: 2,
		MaxSelections: 30,
		MinOdds:       dec("1.5"),
		IsActive:      true,
	}
	e, _ := newPlacementEngine("1000", rule, "2", "2", "2.5", "2")
	bet, err := e.Place(context.Background(), 1, WagerRequest{
		BetType:           models.BetTypeMultiple,
		Stake:             dec("10"),
		AcceptOddsChanges: OddsPolicyNone,
		Selections:        selections("2", "2", "2.5", "2"),
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if !bet.BonusPercent.Equal(dec("5")) {
		t.Errorf("bonus percent: got %s, want 5", bet.BonusPercent)
	}
	if !bet.PotentialWin.Equal(dec("210.00")) {
		t.Errorf("potential win: got %s, want 210.00", bet.PotentialWin)
	}
}

func TestPlaceInsufficientBalanceAtCommit(t *testing.T) {
	// The validation-time reader sees enough balance, but the locked
	// row inside the transaction does not; the commit-time check wins.
	e, s := newPlacementEngine("100", nil, "2.5")
	s.wallet.Balance = dec("5")

	_, err := e.Place(context.Background(), 1, WagerRequest{
		BetType:           models.BetTypeSingle,
		Stake:             dec("10"),
		AcceptOddsChanges: OddsPolicyNone,
		Selections:        selections("2.5"),
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if !s.wallet.Balance.Equal(dec("5")) {
		t.Errorf("balance changed: %s", s.wallet.Balance)
	}
	if len(s.bets) != 0 || len(s.ledger) != 0 {
		t.Errorf("expected no writes, got %d bets, %d ledger entries", len(s.bets), len(s.ledger))
	}
}

func TestPlaceRollsBackOnLedgerFailure(t *testing.T) {
	e, s := newPlacementEngine("100", nil, "2.5")
	s.failLedger = true

	_, err := e.Place(context.Background(), 1, WagerRequest{
		BetType:           models.BetTypeSingle,
		Stake:             dec("10"),
		AcceptOddsChanges: OddsPolicyNone,
		Selections:        selections("2.5"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}

	// Every staged write is discarded with the failed transaction.
	if !s.wallet.Balance.Equal(dec("100")) {
		t.Errorf("balance: got %s, want 100", s.wallet.Balance)
	}
	if len(s.bets) != 0 {
		t.Errorf("expected no bets, got %d", len(s.bets))
	}
}

func TestPlaceValidationFailureWritesNothing(t *testing.T) {
	e, s := newPlacementEngine("100", nil, "2.2")
	_, err := e.Place(context.Background(), 1, WagerRequest{
		BetType:           models.BetTypeSingle,
		Stake:             dec("10"),
		AcceptOddsChanges: OddsPolicyNone,
		Selections:        selections("2.5"),
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(s.bets) != 0 || len(s.ledger) != 0 || !s.wallet.Balance.Equal(dec("100")) {
		t.Error("expected no side effects from a rejected wager")
	}
}
