package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// SupportedAPIVersion is the only API version this service speaks.
const SupportedAPIVersion = "1.0.0"

// VersionMiddleware parses the X-Api-Version header, stores it in context and echoes it back
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", SupportedAPIVersion)

		// Support version aliases
		if version == "1" || version == "1.0" {
			version = SupportedAPIVersion
		}

		// Store version in context
		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", SupportedAPIVersion)

		return c.Next()
	}
}
