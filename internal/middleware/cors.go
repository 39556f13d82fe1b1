package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	corsAllowHeaders = "Content-Type, Authorization, True"
	corsAllowMethods = "GET,PUT,POST,DELETE,OPTIONS"
)

// CORS allows any origin on every route. The allow headers are also set on
// non-preflight responses, which the web frontend relies on.
func CORS() fiber.Handler {
	preflight := cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: corsAllowHeaders,
		AllowMethods: corsAllowMethods,
	})

	return func(c *fiber.Ctx) error {
		err := preflight(c)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
		return err
	}
}
