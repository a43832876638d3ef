package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/api/dto"
	"github.com/spec-kit/registry-dashboard/internal/service"
)

// AffiliationsHandler manages account affiliations.
type AffiliationsHandler struct {
	affiliations *service.AffiliationService
}

// NewAffiliationsHandler constructs handler.
func NewAffiliationsHandler(affiliations *service.AffiliationService) *AffiliationsHandler {
	return &AffiliationsHandler{affiliations: affiliations}
}

// List handles GET /api/v1/accounts/:accountId/affiliations.
func (h *AffiliationsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	items, err := h.affiliations.List(c.UserContext(), p, c.Params("accountId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAffiliationList(items)})
}

// Create handles POST /api/v1/accounts/:accountId/affiliations.
func (h *AffiliationsHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateAffiliationRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	aff, err := h.affiliations.AddWithoutAuthentication(legalContext(c, p).UserContext(), p, c.Params("accountId"), service.AffiliationInput{
		BusinessIdentifier: req.BusinessIdentifier,
		Nickname:           req.Nickname,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAffiliationResponse(*aff)})
}

// Delete handles DELETE /api/v1/accounts/:accountId/affiliations/:identifier.
func (h *AffiliationsHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.affiliations.Remove(c.UserContext(), p, c.Params("accountId"), c.Params("identifier")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
