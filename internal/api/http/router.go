package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/authz"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Authorizations *handlers.AuthorizationsHandler
	Businesses     *handlers.BusinessesHandler
	Affiliations   *handlers.AffiliationsHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
	Authorizer     *authz.Authorizer
	Decisions      auth.DecisionRecorder
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	require := func(action authz.Action) fiber.Handler {
		return auth.RequireAction(cfg.Authorizer, cfg.Decisions, action)
	}

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	api.Get("/authorizations", cfg.Authorizations.List)
	api.Get("/authorizations/:action", cfg.Authorizations.Check)

	businesses := api.Group("/businesses/:identifier")
	businesses.Get("", cfg.Businesses.Get)
	businesses.Get("/alerts", cfg.Businesses.Alerts)
	businesses.Get("/addresses", cfg.Businesses.Addresses)
	businesses.Get("/resolutions", cfg.Businesses.Resolutions)
	businesses.Post("/restoration", require(authz.ActionRestoreOrReinstate), cfg.Businesses.StartRestoration)

	accounts := api.Group("/accounts/:accountId")
	accounts.Get("/affiliations", cfg.Affiliations.List)
	accounts.Post("/affiliations", require(authz.ActionAddEntityNoAuthentication), cfg.Affiliations.Create)
	accounts.Delete("/affiliations/:identifier", cfg.Affiliations.Delete)

	staff := api.Group("/staff", require(authz.ActionStaffDashboard))
	staff.Get("/dashboard", cfg.Staff.Dashboard)

	internal := app.Group("/internal", cfg.AuthMiddleware.Handle, require(authz.ActionStaffDashboard))
	internal.Get("/metrics", cfg.Staff.Metrics)
}
