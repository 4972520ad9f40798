package handlers

import (
	applog "prodx/internal/log"
	"prodx/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin lets a request through only with a live staff session.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		a, err := auth.CurrentAdmin(c.UserContext(), sid)
		if err != nil || a == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Redirect("/login")
		}
		c.Locals("admin", a)
		c.Locals("actor_id", a.ID)
		return c.Next()
	}
}
