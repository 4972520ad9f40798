package handlers

import (
	applog "prodx/internal/log"
	"prodx/internal/services"
	"prodx/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Reports *services.ReportService
}

// GET /admin/analytics?year=YYYY
func (h *AnalyticsHandler) Page(c *fiber.Ctx) error {
	year, ok := validate.Year(c.Query("year"))
	if !ok {
		year = h.Reports.CurrentYear()
	}
	a, err := h.Reports.Analytics(c.UserContext(), year)
	if err != nil {
		applog.Error(c, "admin.analytics.fail", err, map[string]any{"year": year})
		return renderError(c, fiber.StatusInternalServerError, "Could not load analytics")
	}
	return render(c, "admin_analytics", fiber.Map{"A": a, "IsCurrentYear": year == h.Reports.CurrentYear()})
}

// GET /admin/analytics.json?year=YYYY
func (h *AnalyticsHandler) JSON(c *fiber.Ctx) error {
	year, ok := validate.Year(c.Query("year"))
	if !ok {
		year = h.Reports.CurrentYear()
	}
	a, err := h.Reports.Analytics(c.UserContext(), year)
	if err != nil {
		applog.Error(c, "admin.analytics.fail", err, map[string]any{"year": year})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load analytics"})
	}
	return c.JSON(fiber.Map{
		"year":                   a.Year,
		"years":                  a.Years,
		"monthly_approvals":      a.Monthly,
		"current_month_approved": a.CurrentMonthApproved,
		"status_counts":          a.Counts,
	})
}
