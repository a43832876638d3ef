package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/api/dto"
	"github.com/spec-kit/registry-dashboard/internal/service"
)

// BusinessesHandler exposes legal API reads for a business.
type BusinessesHandler struct {
	businesses *service.BusinessService
}

// NewBusinessesHandler constructs handler.
func NewBusinessesHandler(businesses *service.BusinessService) *BusinessesHandler {
	return &BusinessesHandler{businesses: businesses}
}

// Get handles GET /api/v1/businesses/:identifier.
func (h *BusinessesHandler) Get(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	view, err := h.businesses.Get(legalContext(c, p).UserContext(), c.Params("identifier"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BusinessResponse{Business: view.Business, Alerts: view.Alerts}})
}

// Alerts handles GET /api/v1/businesses/:identifier/alerts.
func (h *BusinessesHandler) Alerts(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	view, err := h.businesses.Get(legalContext(c, p).UserContext(), c.Params("identifier"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view.Alerts})
}

// Addresses handles GET /api/v1/businesses/:identifier/addresses.
func (h *BusinessesHandler) Addresses(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	addr, err := h.businesses.Addresses(legalContext(c, p).UserContext(), c.Params("identifier"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": addr})
}

// Resolutions handles GET /api/v1/businesses/:identifier/resolutions.
func (h *BusinessesHandler) Resolutions(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	res, err := h.businesses.Resolutions(legalContext(c, p).UserContext(), c.Params("identifier"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"resolutions": res}})
}

// StartRestoration handles POST /api/v1/businesses/:identifier/restoration.
func (h *BusinessesHandler) StartRestoration(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.RestorationRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	filingID, err := h.businesses.StartRestoration(legalContext(c, p).UserContext(), p, c.Params("identifier"), req.Type)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.RestorationResponse{FilingID: filingID}})
}
