package middlewares

import (
	"errors"
	"strings"

	"voiceleads-backend/database"
	"voiceleads-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireWorkspace resolves the caller's membership in the token's workspace
// and stashes the role in locals. Run AFTER IsAuthenticatedHeader().
// A token whose workspace the user no longer belongs to is treated as
// unauthorized, not forbidden: the tenant context itself is invalid.
func RequireWorkspace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(string)
		workspaceID, _ := c.Locals("workspaceID").(string)
		if strings.TrimSpace(userID) == "" || strings.TrimSpace(workspaceID) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "auth context missing")
		}

		var membership models.UserWorkspace
		err := database.DB.
			Where("user_id = ? AND workspace_id = ?", userID, workspaceID).
			First(&membership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "not a member of this workspace")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "membership lookup failed")
		}

		c.Locals("role", membership.Role)
		return c.Next()
	}
}

// RequireAction gates a route on the static role permission table. Run AFTER
// RequireWorkspace().
func RequireAction(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if !models.RoleAllows(role, action) {
			return fiber.NewError(fiber.StatusForbidden, "role does not permit this action")
		}
		return c.Next()
	}
}
