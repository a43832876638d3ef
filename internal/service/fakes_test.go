package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/internal/legalapi"
	"github.com/spec-kit/registry-dashboard/internal/repository"
)

type fakeAffiliationRepo struct {
	mu    sync.Mutex
	items []domain.Affiliation
}

func (r *fakeAffiliationRepo) Create(_ context.Context, aff *domain.Affiliation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.AccountID == aff.AccountID && existing.BusinessIdentifier == aff.BusinessIdentifier {
			return repository.ErrDuplicate
		}
	}
	aff.CreatedAt = time.Now()
	r.items = append(r.items, *aff)
	return nil
}

func (r *fakeAffiliationRepo) Delete(_ context.Context, accountID, identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.AccountID == accountID && existing.BusinessIdentifier == identifier {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeAffiliationRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Affiliation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Affiliation{}
	for _, existing := range r.items {
		if existing.AccountID == accountID {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (r *fakeAffiliationRepo) ListRecent(_ context.Context, limit int) ([]domain.Affiliation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.Affiliation{}, r.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeAuthorizationRepo struct {
	roles    map[string][]string
	err      error
	reads    int
	replaced *domain.AccountAuthorization
}

func (r *fakeAuthorizationRepo) RolesForAccount(_ context.Context, accountID string) ([]string, error) {
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	return r.roles[accountID], nil
}

func (r *fakeAuthorizationRepo) Replace(_ context.Context, auth *domain.AccountAuthorization) error {
	if r.err != nil {
		return r.err
	}
	r.replaced = auth
	if r.roles == nil {
		r.roles = map[string][]string{}
	}
	r.roles[auth.AccountID] = auth.Roles
	return nil
}

type memoryRoleCache struct {
	data        map[string][]string
	invalidated []string
}

func newMemoryRoleCache() *memoryRoleCache {
	return &memoryRoleCache{data: map[string][]string{}}
}

func (c *memoryRoleCache) Get(_ context.Context, accountID string) ([]string, bool, error) {
	roles, ok := c.data[accountID]
	return roles, ok, nil
}

func (c *memoryRoleCache) Set(_ context.Context, accountID string, roles []string) error {
	c.data[accountID] = roles
	return nil
}

func (c *memoryRoleCache) Invalidate(_ context.Context, accountID string) error {
	delete(c.data, accountID)
	c.invalidated = append(c.invalidated, accountID)
	return nil
}

type fakeLegal struct {
	businesses map[string]*domain.Business
	err        error
	drafts     []domain.RestorationType
}

func (f *fakeLegal) GetBusiness(_ context.Context, id string) (*domain.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id == "" {
		return nil, legalapi.ErrMissingBusinessID
	}
	b, ok := f.businesses[id]
	if !ok {
		return nil, &legalapi.Error{Status: 404, Path: "businesses/" + id}
	}
	return b, nil
}

func (f *fakeLegal) GetAddresses(_ context.Context, id string) (*domain.IncorporationAddress, error) {
	if _, ok := f.businesses[id]; !ok {
		return nil, &legalapi.Error{Status: 404}
	}
	return &domain.IncorporationAddress{}, nil
}

func (f *fakeLegal) GetResolutions(_ context.Context, id string) ([]domain.Resolution, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Resolution{{ID: 1, Type: "SPECIAL"}}, nil
}

func (f *fakeLegal) CreateRestorationDraft(_ context.Context, id string, kind domain.RestorationType) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.drafts = append(f.drafts, kind)
	return int64(100 + len(f.drafts)), nil
}

var errStoreDown = errors.New("connection refused")
