package handlers

import (
	"errors"

	applog "prodx/internal/log"
	"prodx/internal/services"
	"prodx/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	Companies *services.CompanyService
}

// POST /admin/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	in := services.CompanyInput{
		Name:          c.FormValue("company"),
		Address:       c.FormValue("address"),
		EmailAddress:  c.FormValue("email_address"),
		ContactNumber: c.FormValue("contact_number"),
	}
	co, err := h.Companies.Create(c.UserContext(), in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			applog.Security(c, "validation.fail", map[string]any{"form": "company", "fields": fields})
			return c.Status(fiber.StatusBadRequest).SendString("all company fields are required and must be valid")
		}
		applog.Error(c, "admin.companies.create.fail", err, nil)
		return renderError(c, fiber.StatusInternalServerError, "Could not save the company. Please try again.")
	}
	applog.Audit(c, "admin.companies.create", map[string]any{"company_id": co.ID, "company": co.Name})
	return c.Redirect("/admin?company_added=1")
}

// POST /admin/companies/:id/delete
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "company_id"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid company id")
	}
	existed, err := h.Companies.Delete(c.UserContext(), id)
	if err != nil {
		applog.Error(c, "admin.companies.delete.fail", err, map[string]any{"company_id": id})
		return renderError(c, fiber.StatusInternalServerError, "Could not delete the company. Please try again.")
	}
	applog.Audit(c, "admin.companies.delete", map[string]any{"company_id": id, "existed": existed})
	return c.Redirect("/admin?company_deleted=1")
}
