package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/internal/events"
	"github.com/spec-kit/registry-dashboard/internal/legalapi"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

func principal(accountID string, roles ...string) *auth.Principal {
	return &auth.Principal{
		Identity: domain.Identity{SubjectID: "sub-" + accountID, AccountID: accountID, Roles: roles},
		Roles:    authz.NewRoleSet(roles...),
	}
}

func statusOf(err error) int {
	return errorutil.ToDomainError(err).HTTPStatus
}

func TestSessionSnapshotMergesStoredRoles(t *testing.T) {
	repo := &fakeAuthorizationRepo{roles: map[string][]string{"2617": {"sbc_staff"}}}
	roleCache := newMemoryRoleCache()
	svc := NewSessionService(repo, roleCache, nil, zap.NewNop())

	roles := svc.Snapshot(context.Background(), domain.Identity{AccountID: "2617", Roles: []string{"public_user"}})
	if !roles.Has(authz.RoleSbcStaff) || !roles.Has("public_user") {
		t.Fatalf("roles = %v", roles.Strings())
	}
	if authz.ResolveCategory(roles) != authz.CategorySbcFieldOfficeStaff {
		t.Fatal("expected sbc field office staff")
	}

	svc.Snapshot(context.Background(), domain.Identity{AccountID: "2617"})
	if repo.reads != 1 {
		t.Fatalf("expected cached second read, repo reads = %d", repo.reads)
	}
}

func TestSessionSnapshotFailsSafe(t *testing.T) {
	repo := &fakeAuthorizationRepo{err: errStoreDown}
	svc := NewSessionService(repo, nil, nil, zap.NewNop())

	roles := svc.Snapshot(context.Background(), domain.Identity{AccountID: "2617", Roles: []string{"maximus_staff"}})
	if roles.Len() != 1 || !roles.Has(authz.RoleMaximusStaff) {
		t.Fatalf("expected token roles only, got %v", roles.Strings())
	}

	empty := svc.Snapshot(context.Background(), domain.Identity{AccountID: "2617"})
	if empty.Len() != 0 {
		t.Fatalf("expected empty role set, got %v", empty.Strings())
	}
	for _, action := range authz.AllActions() {
		if authz.NewAuthorizer(nil).IsAuthorized(authz.StaticRoles(empty), action) {
			t.Fatalf("%s should be denied when the store is down", action)
		}
	}
}

func TestSessionSnapshotWithoutStore(t *testing.T) {
	svc := NewSessionService(nil, nil, nil, zap.NewNop())
	roles := svc.Snapshot(context.Background(), domain.Identity{AccountID: "1", Roles: []string{"staff"}})
	if !roles.Has(authz.RoleStaff) || roles.Len() != 1 {
		t.Fatalf("roles = %v", roles.Strings())
	}
}

func TestReplaceAuthorizations(t *testing.T) {
	repo := &fakeAuthorizationRepo{}
	roleCache := newMemoryRoleCache()
	roleCache.data["2617"] = []string{"old"}
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventAuthorizationsChanged, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewSessionService(repo, roleCache, dispatcher, zap.NewNop())

	stored, err := svc.ReplaceAuthorizations(context.Background(), " 2617 ", []string{" staff", " ", "staff", "contact_centre_staff"}, events.Actor{SubjectID: "cli"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := []string{"contact_centre_staff", "staff"}
	if stored.AccountID != "2617" || len(stored.Roles) != 2 || stored.Roles[1] != "staff" {
		t.Fatalf("stored = %+v", stored)
	}
	if len(repo.replaced.Roles) != 2 || repo.replaced.Roles[0] != want[0] || repo.replaced.Roles[1] != want[1] {
		t.Fatalf("replaced roles = %v", repo.replaced.Roles)
	}
	if _, ok := roleCache.data["2617"]; ok {
		t.Fatal("cache should be invalidated")
	}
	if len(published) != 1 || published[0].AccountID != "2617" {
		t.Fatalf("published = %+v", published)
	}

	if _, err := svc.ReplaceAuthorizations(context.Background(), "", nil, events.Actor{}); err == nil {
		t.Fatal("expected error for blank account")
	}
}

func TestAffiliationListAccess(t *testing.T) {
	repo := &fakeAffiliationRepo{items: []domain.Affiliation{{AccountID: "1", BusinessIdentifier: "BC1"}, {AccountID: "2", BusinessIdentifier: "BC2"}}}
	svc := NewAffiliationService(repo, nil, authz.NewAuthorizer(nil), nil, zap.NewNop())
	ctx := context.Background()

	own, err := svc.List(ctx, principal("1"), "1")
	if err != nil || len(own) != 1 {
		t.Fatalf("own list = %v, %v", own, err)
	}
	if _, err := svc.List(ctx, principal("1", "maximus_staff"), "2"); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	other, err := svc.List(ctx, principal("1", "staff"), "2")
	if err != nil || len(other) != 1 || other[0].BusinessIdentifier != "BC2" {
		t.Fatalf("staff list = %v, %v", other, err)
	}
}

func TestAffiliationAddWithoutAuthentication(t *testing.T) {
	repo := &fakeAffiliationRepo{}
	legal := &fakeLegal{businesses: map[string]*domain.Business{"BC0871227": {Identifier: "BC0871227"}}}
	dispatcher := events.NewInMemoryDispatcher()
	var added []events.Event
	dispatcher.Subscribe(events.EventAffiliationAdded, func(_ context.Context, e events.Event) error {
		added = append(added, e)
		return nil
	})
	svc := NewAffiliationService(repo, legal, authz.NewAuthorizer(nil), dispatcher, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.AddWithoutAuthentication(ctx, principal("1"), "1", AffiliationInput{BusinessIdentifier: "BC0871227"}); statusOf(err) != http.StatusForbidden {
		t.Fatalf("default user should be forbidden, got %v", err)
	}

	staff := principal("9", "sbc_staff")
	aff, err := svc.AddWithoutAuthentication(ctx, staff, "1", AffiliationInput{BusinessIdentifier: " bc0871227 ", Nickname: "Acme"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if aff.ID == "" || aff.BusinessIdentifier != "BC0871227" || aff.CreatedBy != "sub-9" {
		t.Fatalf("unexpected affiliation %+v", aff)
	}
	if len(added) != 1 || added[0].Actor.Category != string(authz.CategorySbcFieldOfficeStaff) {
		t.Fatalf("events = %+v", added)
	}

	if _, err := svc.AddWithoutAuthentication(ctx, staff, "1", AffiliationInput{BusinessIdentifier: "BC0871227"}); statusOf(err) != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.AddWithoutAuthentication(ctx, staff, "1", AffiliationInput{BusinessIdentifier: "BC404"}); statusOf(err) != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.AddWithoutAuthentication(ctx, staff, "1", AffiliationInput{}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAffiliationRemove(t *testing.T) {
	repo := &fakeAffiliationRepo{items: []domain.Affiliation{{AccountID: "1", BusinessIdentifier: "BC1"}}}
	svc := NewAffiliationService(repo, nil, authz.NewAuthorizer(nil), nil, zap.NewNop())
	ctx := context.Background()

	if err := svc.Remove(ctx, principal("2"), "1", "BC1"); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Remove(ctx, principal("1"), "1", "bc1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(ctx, principal("1"), "1", "BC1"); statusOf(err) != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBusinessServiceMapsLegalErrors(t *testing.T) {
	standing := true
	legal := &fakeLegal{businesses: map[string]*domain.Business{"BC1": {Identifier: "BC1", AdminFreeze: true, GoodStanding: &standing}}}
	svc := NewBusinessService(legal, authz.NewAuthorizer(nil), nil, zap.NewNop())
	ctx := context.Background()

	view, err := svc.Get(ctx, "BC1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Alerts) != 1 || view.Alerts[0] != domain.AlertFrozen {
		t.Fatalf("alerts = %v", view.Alerts)
	}
	if _, err := svc.Get(ctx, "BC2"); statusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if _, err := svc.Get(ctx, ""); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	legal.err = errors.New("connection reset")
	if _, err := svc.Resolutions(ctx, "BC1"); statusOf(err) != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v", err)
	}
	legal.err = &legalapi.Error{Status: 401}
	if _, err := svc.Get(ctx, "BC1"); statusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestStartRestoration(t *testing.T) {
	legal := &fakeLegal{}
	svc := NewBusinessService(legal, authz.NewAuthorizer(nil), events.NewInMemoryDispatcher(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.StartRestoration(ctx, principal("1", "contact_centre_staff"), "BC1", domain.RestorationFull); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	id, err := svc.StartRestoration(ctx, principal("1", "staff"), "BC1", domain.RestorationLimited)
	if err != nil || id != 101 {
		t.Fatalf("restoration = %d, %v", id, err)
	}
	if len(legal.drafts) != 1 || legal.drafts[0] != domain.RestorationLimited {
		t.Fatalf("drafts = %v", legal.drafts)
	}
}
