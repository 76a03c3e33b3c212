package middleware

import (
	"strings"

	"skincare-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// Protected middleware. Runs the full verification including the
// blocklist check, so no protected route can forget it.
func Protected(authService *auth.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		// Handle both cases: with and without "Bearer " prefix
		token := authHeader
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			token = authHeader[7:]
		}

		claims, err := authService.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		// Add claims to context for use in protected routes
		c.Locals("user", claims)
		c.Locals("token", token)
		return c.Next()
	}
}
