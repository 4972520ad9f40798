package handlers

import (
	"prodx/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if a := c.Locals("admin"); a != nil {
		data["Admin"] = a
	}
	// Fall back to the cookie when the csrf middleware left no local.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func renderError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}

// currentActor returns the staff member RequireAdmin attached to c.
func currentActor(c *fiber.Ctx) domain.Actor {
	a, _ := c.Locals("admin").(*domain.Admin)
	return a.Actor()
}
