package middleware

import (
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly guards administrator transitions. The server-side check is the
// security boundary; clients hiding buttons is not.
func AdminOnly(c *fiber.Ctx) error {
	userRole, ok := c.Locals("user_role").(string)
	if !ok || userRole != models.RoleAdmin {
		return utils.Error(c, "Admin access required", fiber.StatusForbidden)
	}
	return c.Next()
}

func Authenticated(c *fiber.Ctx) error {
	if _, err := GetUserIDFromContext(c); err != nil {
		return utils.Error(c, "Authentication required", fiber.StatusUnauthorized)
	}
	return c.Next()
}
