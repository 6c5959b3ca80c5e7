package bets

import (
	"errors"
	"strconv"

	"sportsbet/database"
	"sportsbet/engine"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

func GetBet(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	betID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return helpers.JSONError(c, "INVALID_BET_ID")
	}

	bet, err := eng.GetBet(c.Context(), uint(betID), user.ID)
	if err != nil {
		if errors.Is(err, engine.ErrBetNotFound) {
			return helpers.JSONNotFound(c, "BET_NOT_FOUND")
		}
		return helpers.JSONError(c, "FAILED_TO_LOAD_BET")
	}

	return helpers.JSONSuccess(c, "Bet retrieved successfully", bet)
}

func ListBets(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	var bets []models.Bet
	if err := database.DB.Preload("Selections").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(100).
		Find(&bets).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_BETS")
	}

	return helpers.JSONSuccess(c, "Bets retrieved successfully", bets)
}
