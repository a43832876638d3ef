package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/api/dto"
	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/legalapi"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok || p == nil {
		return nil, errorutil.NewUnauthorized("authentication required")
	}
	return p, nil
}

func parseAndValidate(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if details, err := dto.Validate(payload); err != nil {
		return errorutil.NewValidationError("invalid payload", details)
	}
	return nil
}

// legalContext carries the caller's credentials to the legal API.
func legalContext(c *fiber.Ctx, p *auth.Principal) *fiber.Ctx {
	c.SetUserContext(legalapi.WithCredentials(c.UserContext(), legalapi.Credentials{
		Token:     p.Token,
		AccountID: p.AccountID,
	}))
	return c
}
