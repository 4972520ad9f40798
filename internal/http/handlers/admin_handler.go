package handlers

import (
	"errors"

	"prodx/internal/domain"
	applog "prodx/internal/log"
	"prodx/internal/services"
	"prodx/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Queue     *services.QueueService
	Review    *services.ReviewService
	Reports   *services.ReportService
	Companies *services.CompanyService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pending, err := h.Queue.Pending(ctx)
	if err != nil {
		applog.Error(c, "admin.queue.list.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Could not load pending products")
	}
	counts, err := h.Reports.StatusCounts(ctx)
	if err != nil {
		applog.Error(c, "admin.counts.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Could not load product totals")
	}
	companies, err := h.Companies.List(ctx)
	if err != nil {
		applog.Error(c, "admin.companies.list.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Could not load companies")
	}
	return render(c, "admin_dashboard", fiber.Map{
		"Pending":        pending,
		"Counts":         counts,
		"Companies":      companies,
		"Updated":        c.Query("updated") == "1",
		"CompanyAdded":   c.Query("company_added") == "1",
		"CompanyDeleted": c.Query("company_deleted") == "1",
	})
}

// POST /admin/products/decision
func (h *AdminHandler) Decide(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.FormValue("product_id"))
	if !okID {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	decision, okAct := domain.ParseDecision(c.FormValue("action"))
	if !okAct {
		applog.Security(c, "validation.fail", map[string]any{"field": "action"})
		return c.Status(fiber.StatusBadRequest).SendString("action must be confirm or reject")
	}

	note, err := h.Review.Decide(c.UserContext(), currentActor(c), pid, decision)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		applog.Error(c, "review.decide.not_found", err, map[string]any{"product_id": pid})
		return renderError(c, fiber.StatusNotFound, "That product no longer exists")
	case errors.Is(err, services.ErrInvalidDecision):
		return c.Status(fiber.StatusBadRequest).SendString("invalid decision")
	case err != nil:
		applog.Error(c, "review.decide.fail", err, map[string]any{"product_id": pid, "decision": string(decision)})
		return renderError(c, fiber.StatusInternalServerError, "Could not save the decision. Please try again.")
	}

	applog.Audit(c, "review.decide", map[string]any{
		"product_id":   pid,
		"decision":     string(decision),
		"notification": string(note.State),
	})
	return c.Redirect("/admin?updated=1")
}

// GET /admin/notifications
func (h *AdminHandler) Notifications(c *fiber.Ctx) error {
	notes, err := h.Review.Recent(c.UserContext(), 100)
	if err != nil {
		applog.Error(c, "admin.notifications.list.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Could not load notifications")
	}
	return render(c, "admin_notifications", fiber.Map{"Notifications": notes})
}
