package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/api/dto"
	"github.com/spec-kit/registry-dashboard/internal/observability"
	"github.com/spec-kit/registry-dashboard/internal/service"
)

const dashboardRecentLimit = 25

// StaffHandler serves staff-only views.
type StaffHandler struct {
	affiliations *service.AffiliationService
	metrics      *observability.Metrics
}

// NewStaffHandler constructs handler.
func NewStaffHandler(affiliations *service.AffiliationService, metrics *observability.Metrics) *StaffHandler {
	return &StaffHandler{affiliations: affiliations, metrics: metrics}
}

// Dashboard handles GET /api/v1/staff/dashboard.
func (h *StaffHandler) Dashboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", dashboardRecentLimit)
	if limit <= 0 || limit > 100 {
		limit = dashboardRecentLimit
	}
	recent, err := h.affiliations.Recent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"recentAffiliations": dto.NewAffiliationList(recent),
	}})
}

// Metrics handles GET /internal/metrics.
func (h *StaffHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
