package bets

import (
	"sportsbet/engine"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

// ValidateBet is the pre-flight check used for UI feedback. The result
// is advisory; placement re-validates inside its own transaction.
func ValidateBet(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	var req engine.WagerRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	res := eng.Validate(c.Context(), user.ID, req)
	return helpers.JSONSuccess(c, "Validation completed", res)
}
