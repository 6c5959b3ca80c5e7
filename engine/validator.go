package engine

import (
	"context"
	"fmt"

	"sportsbet/models"

	"github.com/shopspring/decimal"
)

// Fixed platform limits, enforced regardless of rule configuration.
var (
	minStake        = decimal.NewFromInt(1)
	maxStake        = decimal.NewFromInt(100000)
	maxPotentialWin = decimal.NewFromInt(1000000)
	maxTotalOdds    = decimal.NewFromInt(1000)
)

const maxSelectionCount = 30

// Validate checks a candidate wager against the live catalog, the
// betting rules, and the user's balance. It never mutates state and is
// safe to call repeatedly; placement re-runs it before committing.
func (e *Engine) Validate(ctx context.Context, userID uint, req WagerRequest) ValidationResult {
	res := ValidationResult{
		Errors:       []string{},
		Warnings:     []string{},
		TotalOdds:    decimal.NewFromInt(1),
		PotentialWin: decimal.Zero,
		BonusPercent: decimal.Zero,
	}

	switch req.BetType {
	case models.BetTypeSingle, models.BetTypeMultiple:
	case models.BetTypeSystem, models.BetTypeChain:
		res.Errors = append(res.Errors, fmt.Sprintf("Bet type %q is not supported yet", req.BetType))
		return res
	default:
		res.Errors = append(res.Errors, fmt.Sprintf("Unknown bet type %q", req.BetType))
		return res
	}

	rule, err := e.rules.Rule(ctx, req.BetType)
	if err != nil {
		res.Errors = append(res.Errors, "Could not load betting rules")
		return res
	}

	e.checkSelectionCount(&res, req, rule)

	eligible := 0
	seenGames := make(map[uint]bool)

	for _, sel := range req.Selections {
		if seenGames[sel.GameID] {
			res.Errors = append(res.Errors, "Multiple selections from the same game are not allowed")
			break
		}
		seenGames[sel.GameID] = true

		event, err := e.catalog.Event(ctx, sel.EventID)
		if err != nil || event == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Event %d not found", sel.EventID))
			continue
		}
		market, err := e.catalog.Market(ctx, sel.MarketID)
		if err != nil || market == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Market %d not found", sel.MarketID))
			continue
		}
		game, err := e.catalog.Game(ctx, sel.GameID)
		if err != nil || game == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Game %d not found", sel.GameID))
			continue
		}

		if event.IsSuspended {
			res.Errors = append(res.Errors, fmt.Sprintf("Event %q is suspended", event.Name))
			continue
		}
		if market.IsSuspended {
			res.Errors = append(res.Errors, fmt.Sprintf("Market %q is suspended", market.Name))
			continue
		}
		if game.IsBlocked {
			res.Errors = append(res.Errors, fmt.Sprintf("Game %s vs %s is blocked", game.Team1Name, game.Team2Name))
			continue
		}

		current := event.CurrentPrice
		if !current.Equal(sel.Odds) {
			moved := fmt.Sprintf("Odds changed for %q: %s → %s", event.Name, sel.Odds, current)
			switch {
			case req.AcceptOddsChanges == OddsPolicyAny:
				res.Warnings = append(res.Warnings, moved)
			case req.AcceptOddsChanges == OddsPolicyHigher && current.GreaterThan(sel.Odds):
				res.Warnings = append(res.Warnings, moved)
			default:
				res.Errors = append(res.Errors, moved)
			}
		}

		// The current catalog price is authoritative for every
		// downstream calculation, never the submitted one.
		res.TotalOdds = res.TotalOdds.Mul(current)

		if rule == nil || current.GreaterThanOrEqual(rule.MinOdds) {
			eligible++
		}
	}

	res.PotentialWin = req.Stake.Mul(res.TotalOdds)
	if req.BetType == models.BetTypeMultiple && eligible >= minBonusSelections {
		res.BonusPercent = AccumulatorBonusPercent(eligible)
		uplift := decimal.NewFromInt(1).Add(res.BonusPercent.Div(decimal.NewFromInt(100)))
		res.PotentialWin = res.PotentialWin.Mul(uplift)
	}
	res.PotentialWin = res.PotentialWin.Round(2)

	e.checkBalance(ctx, &res, userID, req)
	e.checkPlatformLimits(&res, req)

	res.Valid = len(res.Errors) == 0
	return res
}

func (e *Engine) checkSelectionCount(res *ValidationResult, req WagerRequest, rule *models.BettingRule) {
	n := len(req.Selections)

	switch req.BetType {
	case models.BetTypeSingle:
		if n != 1 {
			res.Errors = append(res.Errors, "Single bets require exactly one selection")
		}
	case models.BetTypeMultiple:
		if n < 2 {
			res.Errors = append(res.Errors, "Multiple bets require at least two selections")
		}
	}

	if rule != nil {
		if n < rule.MinSelections {
			res.Errors = append(res.Errors, fmt.Sprintf("At least %d selections required", rule.MinSelections))
		}
		if n > rule.MaxSelections {
			res.Errors = append(res.Errors, fmt.Sprintf("At most %d selections allowed", rule.MaxSelections))
		}
	}
}

// Insufficient balance at validation time is an error but not fatal to
// the rest of the pass; the authoritative check happens under the row
// lock at commit time.
func (e *Engine) checkBalance(ctx context.Context, res *ValidationResult, userID uint, req WagerRequest) {
	wallet, err := e.wallets.Wallet(ctx, userID)
	if err != nil || wallet == nil {
		res.Errors = append(res.Errors, "Wallet not found")
		return
	}
	if wallet.AvailableFor(req.Source).LessThan(req.Stake) {
		res.Errors = append(res.Errors, "Insufficient balance")
	}
}

func (e *Engine) checkPlatformLimits(res *ValidationResult, req WagerRequest) {
	if req.Stake.LessThan(minStake) {
		res.Errors = append(res.Errors, fmt.Sprintf("Minimum stake is %s", minStake))
	}
	if req.Stake.GreaterThan(maxStake) {
		res.Errors = append(res.Errors, fmt.Sprintf("Maximum stake is %s", maxStake))
	}
	if res.PotentialWin.GreaterThan(maxPotentialWin) {
		res.Errors = append(res.Errors, fmt.Sprintf("Maximum potential win is %s", maxPotentialWin))
	}
	if res.TotalOdds.GreaterThan(maxTotalOdds) {
		res.Errors = append(res.Errors, fmt.Sprintf("Maximum total odds is %s", maxTotalOdds))
	}
	if len(req.Selections) > maxSelectionCount {
		res.Errors = append(res.Errors, fmt.Sprintf("Maximum %d selections per bet", maxSelectionCount))
	}
}
