package engine

import (
	"errors"
	"strings"
)

var (
	// ErrInsufficientBalance is returned when the locked balance check
	// inside the placement transaction fails, even if pre-flight
	// validation passed.
	ErrInsufficientBalance = errors.New("insufficient balance")

	ErrBetNotFound    = errors.New("bet not found")
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidState is returned when a cashout is requested on a bet
	// that is not pending or whose current value is zero.
	ErrInvalidState = errors.New("bet is not eligible for cashout")

	ErrInvalidCashoutAmount = errors.New("cashout amount must be positive")
)

// ValidationError carries every business-rule violation found in one
// pass, so the caller gets the full list of reasons at once.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}
