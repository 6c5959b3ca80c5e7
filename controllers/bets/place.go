package bets

import (
	"errors"

	"sportsbet/engine"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

func PlaceBet(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	var req engine.WagerRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	bet, err := eng.Place(c.Context(), user.ID, req)
	if err != nil {
		var verr *engine.ValidationError
		switch {
		case errors.As(err, &verr):
			return helpers.JSONErrorDetail(c, "BET_VALIDATION_FAILED", verr.Reasons)
		case errors.Is(err, engine.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		case errors.Is(err, engine.ErrWalletNotFound):
			return helpers.JSONError(c, "WALLET_NOT_FOUND")
		default:
			return helpers.JSONError(c, "BET_PLACEMENT_FAILED")
		}
	}

	return helpers.JSONSuccess(c, "Bet placed successfully", fiber.Map{
		"bet":          bet,
		"booking_code": bet.BookingCode,
	})
}
