package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/api/dto"
	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

// AuthorizationsHandler tells the UI which controls to render.
type AuthorizationsHandler struct {
	authorizer *authz.Authorizer
	recorder   auth.DecisionRecorder
}

// NewAuthorizationsHandler constructs handler.
func NewAuthorizationsHandler(authorizer *authz.Authorizer, recorder auth.DecisionRecorder) *AuthorizationsHandler {
	return &AuthorizationsHandler{authorizer: authorizer, recorder: recorder}
}

// List handles GET /api/v1/authorizations.
func (h *AuthorizationsHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthorizationsResponse{
		Category: h.authorizer.Category(p),
		Actions:  h.authorizer.Permitted(p),
		Roles:    p.Roles.Strings(),
	}})
}

// Check handles GET /api/v1/authorizations/:action.
func (h *AuthorizationsHandler) Check(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	action, ok := authz.ParseAction(c.Params("action"))
	if !ok {
		return errorutil.NewValidationError("unknown action", map[string]any{"action": c.Params("action")})
	}
	decision := h.authorizer.Decide(p, action)
	if h.recorder != nil {
		h.recorder.RecordDecision(string(decision.Action), string(decision.Category), decision.Allowed)
	}
	return c.JSON(fiber.Map{"data": dto.ActionDecisionResponse{Action: action, Authorized: decision.Allowed}})
}
