package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	allowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	allowHeaders = "Origin, Content-Type, Accept, Authorization"
)

// corsOrigins normalizes the comma separated CORS_ALLOWED_ORIGINS value.
func corsOrigins(raw string) string {
	origins := strings.Split(raw, ",")
	out := origins[:0]
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}

// preflight answers every OPTIONS request with 200, the permissive CORS
// headers and an empty body, whether or not a route exists for the path.
func preflight(origins string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, allowedOrigin(origins, c.Get(fiber.HeaderOrigin)))
		c.Vary(fiber.HeaderOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, allowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, allowHeaders)
		c.Status(fiber.StatusOK)
		return nil
	}
}

// allowedOrigin echoes the request origin when it is configured and falls
// back to the first configured origin otherwise. The header never carries a list.
func allowedOrigin(origins, reqOrigin string) string {
	if origins == "*" {
		return "*"
	}
	list := strings.Split(origins, ",")
	for _, o := range list {
		if o == reqOrigin {
			return o
		}
	}
	return list[0]
}

func corsMiddleware(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: allowHeaders,
		AllowMethods: allowMethods,
	})
}
