package bets

import (
	"errors"

	"sportsbet/bookingcode"
	"sportsbet/database"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

// ResolveBookingCode redirects a permanent code to its placed bet.
// Resolving the same code twice always yields the same bet. Falls back
// to the bet table when the cache entry has expired; the booking code
// on the bet row is permanent.
func ResolveBookingCode(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.User); !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	code := c.Params("code")

	var bet models.Bet
	ref, err := codes.ResolvePlacedBet(c.Context(), code)
	switch {
	case err == nil:
		if err := database.DB.Preload("Selections").First(&bet, ref.BetID).Error; err != nil {
			return helpers.JSONNotFound(c, "BET_NOT_FOUND")
		}
	case errors.Is(err, bookingcode.ErrCodeNotFound):
		if err := database.DB.Preload("Selections").
			Where("booking_code = ?", code).First(&bet).Error; err != nil {
			return helpers.JSONNotFound(c, "BOOKING_CODE_NOT_FOUND")
		}
	default:
		return helpers.JSONError(c, "FAILED_TO_RESOLVE_BOOKING_CODE")
	}

	return helpers.JSONSuccess(c, "Bet retrieved successfully", bet)
}
