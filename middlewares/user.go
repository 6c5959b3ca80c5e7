package middlewares

import (
	"time"

	"sportsbet/database"
	"sportsbet/helpers"
	"sportsbet/models"

	"github.com/gofiber/fiber/v2"
)

// UserAuthMiddleware resolves the session issued by the external auth
// layer to an active user. Session issuance itself is not handled here.
func UserAuthMiddleware(c *fiber.Ctx) error {
	sid := c.Get("X-Session-ID")
	if sid == "" {
		return helpers.JSONError(c, "SESSION_ID_REQUIRED")
	}

	var session models.Session
	if err := database.DB.Preload("User").
		Where("sid = ? AND expires_at > ?", sid, time.Now()).
		First(&session).Error; err != nil {
		return helpers.JSONError(c, "INVALID_OR_EXPIRED_SESSION")
	}

	if !session.User.IsActive {
		return helpers.JSONError(c, "USER_INACTIVE")
	}

	c.Locals("user", session.User)
	return c.Next()
}
