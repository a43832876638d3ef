package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

const (
	principalKey    = "auth_principal"
	accountIDHeader = "Account-Id"
)

// Principal represents the authenticated caller together with the role
// snapshot taken for this request.
type Principal struct {
	domain.Identity
	Token string
	Roles authz.RoleSet
}

// RoleSet implements authz.RoleSource.
func (p *Principal) RoleSet() authz.RoleSet {
	if p == nil {
		return authz.RoleSet{}
	}
	return p.Roles
}

// RoleLoader resolves the full role set of a caller. Implementations must not
// fail; unavailable stores contribute no roles.
type RoleLoader interface {
	Snapshot(ctx context.Context, identity domain.Identity) authz.RoleSet
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	roles  RoleLoader
}

// NewAuthMiddleware constructs middleware. roles may be nil, in which case only
// the token's roles are used.
func NewAuthMiddleware(tokens *TokenManager, roles RoleLoader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, roles: roles}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return errorutil.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errorutil.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return errorutil.NewUnauthorized("invalid token")
	}

	// Stored roles and account ownership follow the signed account claim only.
	identity := claims.Identity()
	if header := strings.TrimSpace(c.Get(accountIDHeader)); header != "" && header != identity.AccountID {
		return errorutil.NewForbidden("account id does not match token")
	}

	principal := &Principal{Identity: identity, Token: parts[1]}
	if m.roles != nil {
		principal.Roles = m.roles.Snapshot(c.UserContext(), identity)
	} else {
		principal.Roles = authz.NewRoleSet(identity.Roles...)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// WithPrincipal stores p on the request. Intended for tests and internal routing.
func WithPrincipal(c *fiber.Ctx, p *Principal) {
	c.Locals(principalKey, p)
}
