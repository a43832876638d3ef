package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

type stubLoader struct {
	extra authz.RoleSet
	seen  domain.Identity
}

func (s *stubLoader) Snapshot(_ context.Context, identity domain.Identity) authz.RoleSet {
	s.seen = identity
	return authz.NewRoleSet(identity.Roles...).Union(s.extra)
}

type countingRecorder struct {
	calls   int
	allowed bool
}

func (r *countingRecorder) RecordDecision(_, _ string, allowed bool) {
	r.calls++
	r.allowed = allowed
}

func errorHandler(c *fiber.Ctx, err error) error {
	de := errorutil.ToDomainError(err)
	return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
}

func newApp(mw *AuthMiddleware, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	handlers := append([]fiber.Handler{mw.Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"subject": p.SubjectID, "account": p.AccountID, "roles": p.Roles.Strings()})
	})
	app.Get("/", handlers...)
	return app
}

func mustToken(t *testing.T, tm *TokenManager, id domain.Identity) string {
	t.Helper()
	tok, _, err := tm.GenerateToken(id)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return tok
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	tok := mustToken(t, tm, domain.Identity{SubjectID: "u1", Username: "bcsc/jane", AccountID: "2617", Roles: []string{"staff"}})

	claims, err := tm.ParseToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id := claims.Identity()
	if id.SubjectID != "u1" || id.Username != "bcsc/jane" || id.AccountID != "2617" || len(id.Roles) != 1 {
		t.Fatalf("unexpected identity %+v", id)
	}
	if id.ExpiresAt.IsZero() {
		t.Fatal("expected expiry")
	}

	if _, err := NewTokenManager("other", 5).ParseToken(tok); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestClaimsMergeRealmRoles(t *testing.T) {
	c := &Claims{Roles: []string{"public_user"}, RealmAccess: RealmAccess{Roles: []string{"sbc_staff"}}}
	got := authz.NewRoleSet(c.AllRoles()...)
	if !got.Has(authz.RoleSbcStaff) || got.Len() != 2 {
		t.Fatalf("roles = %v", got.Strings())
	}
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	app := newApp(NewAuthMiddleware(NewTokenManager("secret", 5), nil))
	for _, header := range []string{"", "Basic abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%q: status = %d", header, resp.StatusCode)
		}
	}
}

func TestAuthMiddlewareLoadsPrincipal(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	loader := &stubLoader{extra: authz.NewRoleSet("sbc_staff")}
	app := newApp(NewAuthMiddleware(tm, loader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, tm, domain.Identity{SubjectID: "u1", AccountID: "2617", Roles: []string{"public_user"}}))
	req.Header.Set("Account-Id", "2617")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Subject string   `json:"subject"`
		Account string   `json:"account"`
		Roles   []string `json:"roles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Account != "2617" || loader.seen.AccountID != "2617" {
		t.Fatalf("account = %+v", body)
	}
	if len(body.Roles) != 2 || body.Roles[0] != "public_user" || body.Roles[1] != "sbc_staff" {
		t.Fatalf("roles = %v", body.Roles)
	}
}

func TestAuthMiddlewareRejectsForeignAccountHeader(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	loader := &stubLoader{extra: authz.NewRoleSet("staff")}
	app := newApp(NewAuthMiddleware(tm, loader))

	for _, claim := range []string{"1", ""} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+mustToken(t, tm, domain.Identity{SubjectID: "u1", AccountID: claim}))
		req.Header.Set("Account-Id", "2617")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("claim %q: status = %d", claim, resp.StatusCode)
		}
		if loader.seen.AccountID == "2617" {
			t.Fatalf("claim %q: roles loaded for header account", claim)
		}
	}
}

func TestRequireAction(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	authorizer := authz.NewAuthorizer(nil)

	cases := []struct {
		name   string
		roles  []string
		status int
	}{
		{"staff and sbc", []string{"staff", "sbc_staff"}, http.StatusOK},
		{"sbc", []string{"sbc_staff"}, http.StatusOK},
		{"maximus", []string{"maximus_staff"}, http.StatusForbidden},
		{"none", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &countingRecorder{}
			app := newApp(NewAuthMiddleware(tm, nil), RequireAuthenticated(), RequireAction(authorizer, rec, authz.ActionStaffDashboard))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+mustToken(t, tm, domain.Identity{SubjectID: "u1", Roles: tc.roles}))
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if rec.calls != 1 || rec.allowed != (tc.status == http.StatusOK) {
				t.Fatalf("recorder = %+v", rec)
			}
		})
	}
}

func TestRequireActionWithoutPrincipalDenies(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/", RequireAction(authz.NewAuthorizer(nil), nil, authz.ActionRestoreOrReinstate), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
