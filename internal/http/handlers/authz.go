package handlers

import (
	applog "cherrybud/internal/log"
	"cherrybud/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates the bookkeeping surface behind the password session.
// Unauthenticated requests are redirected to the login prompt, not errored.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" || !auth.IsAdmin(sid) {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Redirect("/login")
		}
		c.Locals("admin", true)
		return c.Next()
	}
}
