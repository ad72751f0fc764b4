package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/types"
)

// AuthAdmin requires a signed-in user holding the ADMIN role
func AuthAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, true, "console.authorization.admin")
	}
}

// AuthUser requires any signed-in, active user
func AuthUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, false, "console.authorization.user")
	}
}

// authorize performs the authorization check against the user loaded by Session
func authorize(c *fiber.Ctx, admin bool, errorType string) error {
	user, ok := c.Locals(LocalUser).(*models.User)
	if !ok || user == nil {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Sign in required",
			Type:    errorType,
		}
	}

	if admin && !user.IsAdmin() {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Administrator role required",
			Type:    errorType,
		}
	}

	return c.Next()
}
