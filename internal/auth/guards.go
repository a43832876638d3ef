package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

// DecisionRecorder observes authorization outcomes.
type DecisionRecorder interface {
	RecordDecision(action, category string, allowed bool)
}

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAction ensures the principal may perform action. Missing principals
// are evaluated with an empty role set and therefore denied.
func RequireAction(authorizer *authz.Authorizer, recorder DecisionRecorder, action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		decision := authorizer.Decide(principal, action)
		if recorder != nil {
			recorder.RecordDecision(string(decision.Action), string(decision.Category), decision.Allowed)
		}
		if !decision.Allowed {
			return errorutil.NewForbidden("not authorized to " + string(action))
		}
		return c.Next()
	}
}
