package bets

import (
	"errors"
	"strconv"

	"sportsbet/engine"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

// CashoutQuote returns the current surrender value without touching
// the bet.
func CashoutQuote(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	betID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helpers.JSONError(c, "INVALID_BET_ID")
	}

	value, err := eng.Valuate(c.Context(), uint(betID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrBetNotFound):
			return helpers.JSONNotFound(c, "BET_NOT_FOUND")
		case errors.Is(err, engine.ErrInvalidState):
			return helpers.JSONError(c, "BET_NOT_CASHOUTABLE")
		default:
			return helpers.JSONError(c, "FAILED_TO_VALUE_BET")
		}
	}

	return helpers.JSONSuccess(c, "Cashout value computed", fiber.Map{
		"bet_id": betID,
		"value":  value,
	})
}

func ExecuteCashout(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	betID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helpers.JSONError(c, "INVALID_BET_ID")
	}

	var req engine.CashoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Type == "" {
		req.Type = engine.CashoutFull
	}

	result, err := eng.Cashout(c.Context(), uint(betID), user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrBetNotFound):
			return helpers.JSONNotFound(c, "BET_NOT_FOUND")
		case errors.Is(err, engine.ErrInvalidState):
			return helpers.JSONError(c, "BET_NOT_CASHOUTABLE")
		case errors.Is(err, engine.ErrInvalidCashoutAmount):
			return helpers.JSONError(c, "INVALID_CASHOUT_AMOUNT")
		default:
			return helpers.JSONError(c, "CASHOUT_FAILED")
		}
	}

	return helpers.JSONSuccess(c, "Cashout completed", result)
}
