package auth

import (
	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

// POST /api/admin/login
// The token handed back is the admin secret itself; clients send it as a
// bearer token on every mutating call.
func LoginHandler(gate *Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if !gate.Authorize(body.Password) {
			return c.Status(fiber.StatusUnauthorized).JSON(LoginResponse{
				Success: false,
				Message: "Wrong password",
			})
		}

		return c.JSON(LoginResponse{
			Success: true,
			Token:   body.Password,
			Message: "Login successful",
		})
	}
}

// GET /api/admin/status
func StatusHandler(gate *Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		return c.JSON(fiber.Map{
			"isAdmin": ok && gate.Authorize(token),
		})
	}
}
