package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin stops the request with 401 unless it carries
// "Authorization: Bearer <admin secret>".
func RequireAdmin(gate *Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is missing")
		}

		token, ok := BearerToken(authHeader)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}
		if !gate.Authorize(token) {
			return fiber.NewError(fiber.StatusUnauthorized, "Admin authorization required")
		}

		return c.Next()
	}
}
