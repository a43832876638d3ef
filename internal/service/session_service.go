package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/cache"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/internal/events"
	"github.com/spec-kit/registry-dashboard/internal/repository"
)

// SessionService builds the role set of a caller from the token and the
// account authorization store.
type SessionService struct {
	repo       repository.AuthorizationRepository
	cache      cache.RoleCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSessionService creates the service. repo may be nil when no database is
// configured; the store then contributes no roles.
func NewSessionService(repo repository.AuthorizationRepository, roleCache cache.RoleCache, dispatcher events.Dispatcher, logger *zap.Logger) *SessionService {
	if roleCache == nil {
		roleCache = cache.NewRedisRoleCache(nil, 0)
	}
	return &SessionService{repo: repo, cache: roleCache, dispatcher: dispatcher, logger: logger}
}

// Snapshot returns token roles merged with the account's stored roles. Store
// failures are logged and treated as an empty role list.
func (s *SessionService) Snapshot(ctx context.Context, identity domain.Identity) authz.RoleSet {
	roles := authz.NewRoleSet(identity.Roles...)
	if identity.AccountID == "" {
		return roles
	}
	stored, err := s.storedRoles(ctx, identity.AccountID)
	if err != nil {
		s.logger.Warn("account authorizations unavailable; using token roles only",
			zap.String("account_id", identity.AccountID),
			zap.Error(err))
		return roles
	}
	return roles.Union(authz.NewRoleSet(stored...))
}

func (s *SessionService) storedRoles(ctx context.Context, accountID string) ([]string, error) {
	if roles, ok, err := s.cache.Get(ctx, accountID); err != nil {
		s.logger.Debug("role cache read failed", zap.String("account_id", accountID), zap.Error(err))
	} else if ok {
		return roles, nil
	}

	if s.repo == nil {
		return nil, nil
	}
	roles, err := s.repo.RolesForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, accountID, roles); err != nil {
		s.logger.Debug("role cache write failed", zap.String("account_id", accountID), zap.Error(err))
	}
	return roles, nil
}

// ReplaceAuthorizations overwrites the stored roles of an account and returns
// the trimmed, de-duplicated record that was written.
func (s *SessionService) ReplaceAuthorizations(ctx context.Context, accountID string, roles []string, actor events.Actor) (*domain.AccountAuthorization, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if s.repo == nil {
		return nil, fmt.Errorf("authorization store not configured")
	}

	cleaned := normalizeRoles(roles)
	stored := &domain.AccountAuthorization{AccountID: accountID, Roles: cleaned}
	if err := s.repo.Replace(ctx, stored); err != nil {
		return nil, fmt.Errorf("replace authorizations: %w", err)
	}
	if err := s.cache.Invalidate(ctx, accountID); err != nil {
		s.logger.Warn("role cache invalidation failed", zap.String("account_id", accountID), zap.Error(err))
	}
	if s.dispatcher != nil {
		event := events.NewEvent(events.EventAuthorizationsChanged, actor, accountID, "",
			events.AuthorizationsChangedPayload{Roles: cleaned})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish authorizations changed", zap.Error(err))
		}
	}
	return stored, nil
}

func normalizeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
