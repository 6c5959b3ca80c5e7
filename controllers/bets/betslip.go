package bets

import (
	"errors"

	"sportsbet/bookingcode"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type saveSlipRequest struct {
	BetType    models.BetType               `json:"bet_type"`
	Stake      decimal.Decimal              `json:"stake"`
	Selections []bookingcode.SavedSelection `json:"selections"`
}

// SaveBetslip stores an unplaced selection set behind a temporary
// shareable code. Totals are computed from the submitted odds; the
// slip is re-validated against the live catalog when placed.
func SaveBetslip(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	var req saveSlipRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if len(req.Selections) == 0 {
		return helpers.JSONError(c, "SELECTIONS_REQUIRED")
	}

	totalOdds := decimal.NewFromInt(1)
	for _, sel := range req.Selections {
		totalOdds = totalOdds.Mul(sel.Odds)
	}

	slip := bookingcode.SavedSlip{
		BetType:    string(req.BetType),
		Stake:      req.Stake,
		TotalOdds:  totalOdds,
		Selections: req.Selections,
	}

	code, err := codes.SaveSlip(c.Context(), slip)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_SAVE_BETSLIP")
	}

	return helpers.JSONSuccess(c, "Betslip saved", fiber.Map{
		"code":       code,
		"total_odds": totalOdds,
	})
}

func ResolveBetslip(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	slip, err := codes.ResolveSlip(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, bookingcode.ErrCodeNotFound) {
			return helpers.JSONNotFound(c, "BETSLIP_NOT_FOUND")
		}
		return helpers.JSONError(c, "FAILED_TO_RESOLVE_BETSLIP")
	}

	return helpers.JSONSuccess(c, "Betslip retrieved", slip)
}
