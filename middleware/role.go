package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/hospital-app/models"
)

// RequireRole checks if the authenticated user has one of the required roles
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Role is set in locals by the JWT middleware
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User role not found in context",
			})
		}

		for _, r := range roles {
			if models.Role(role) == r {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have the required role to perform this action",
		})
	}
}
