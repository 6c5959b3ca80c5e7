package user

import (
	"sportsbet/database"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

func CheckUserBalance(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONError(c, "INVALID_USER_SESSION")
	}

	var wallet models.Wallet
	if err := database.DB.Where("user_id = ?", user.ID).First(&wallet).Error; err != nil {
		return helpers.JSONNotFound(c, "WALLET_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"user_code":     user.UserCode,
		"balance":       wallet.Balance,
		"bonus_balance": wallet.BonusBalance,
		"currency":      wallet.Currency,
	})
}
