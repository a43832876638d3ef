package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/internal/events"
	"github.com/spec-kit/registry-dashboard/internal/repository"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

// AffiliationInput carries the fields of a new affiliation.
type AffiliationInput struct {
	BusinessIdentifier string
	Nickname           string
}

// AffiliationService manages which businesses an account can see.
type AffiliationService struct {
	repo       repository.AffiliationRepository
	businesses BusinessReader
	authorizer *authz.Authorizer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAffiliationService creates the service.
func NewAffiliationService(repo repository.AffiliationRepository, businesses BusinessReader, authorizer *authz.Authorizer, dispatcher events.Dispatcher, logger *zap.Logger) *AffiliationService {
	return &AffiliationService{
		repo:       repo,
		businesses: businesses,
		authorizer: authorizer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// List returns the affiliations of accountID. Reading another account's
// affiliations requires MANAGE_OTHER_ORGANIZATION.
func (s *AffiliationService) List(ctx context.Context, caller *auth.Principal, accountID string) ([]domain.Affiliation, error) {
	if err := s.checkAccountAccess(caller, accountID); err != nil {
		return nil, err
	}
	return s.repo.ListByAccount(ctx, accountID)
}

// AddWithoutAuthentication links a business to accountID without the business
// passcode. Only callers allowed ADD_ENTITY_NO_AUTHENTICATION may do this.
func (s *AffiliationService) AddWithoutAuthentication(ctx context.Context, caller *auth.Principal, accountID string, input AffiliationInput) (*domain.Affiliation, error) {
	if !s.authorizer.IsAuthorized(caller, authz.ActionAddEntityNoAuthentication) {
		return nil, errorutil.NewForbidden("not authorized to add a business without authentication")
	}
	if err := s.checkAccountAccess(caller, accountID); err != nil {
		return nil, err
	}

	identifier := strings.ToUpper(strings.TrimSpace(input.BusinessIdentifier))
	if identifier == "" {
		return nil, errorutil.NewValidationError("business identifier required", nil)
	}
	if s.businesses != nil {
		if _, err := s.businesses.GetBusiness(ctx, identifier); err != nil {
			return nil, mapLegalError(err, identifier)
		}
	}

	aff := &domain.Affiliation{
		ID:                 uuid.NewString(),
		AccountID:          accountID,
		BusinessIdentifier: identifier,
		Nickname:           strings.TrimSpace(input.Nickname),
		CreatedBy:          caller.SubjectID,
	}
	if err := s.repo.Create(ctx, aff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errorutil.NewConflict("business already affiliated with account", map[string]any{
				"account_id":          accountID,
				"business_identifier": identifier,
			})
		}
		return nil, err
	}

	s.publish(ctx, events.EventAffiliationAdded, caller, aff, true)
	return aff, nil
}

// Remove unlinks a business from accountID.
func (s *AffiliationService) Remove(ctx context.Context, caller *auth.Principal, accountID, businessIdentifier string) error {
	if err := s.checkAccountAccess(caller, accountID); err != nil {
		return err
	}
	identifier := strings.ToUpper(strings.TrimSpace(businessIdentifier))
	if err := s.repo.Delete(ctx, accountID, identifier); err != nil {
		return err
	}
	s.publish(ctx, events.EventAffiliationRemoved, caller, &domain.Affiliation{AccountID: accountID, BusinessIdentifier: identifier}, false)
	return nil
}

// Recent lists the newest affiliations across all accounts for the staff dashboard.
func (s *AffiliationService) Recent(ctx context.Context, limit int) ([]domain.Affiliation, error) {
	return s.repo.ListRecent(ctx, limit)
}

func (s *AffiliationService) checkAccountAccess(caller *auth.Principal, accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return errorutil.NewValidationError("account id required", nil)
	}
	if caller != nil && caller.AccountID == accountID {
		return nil
	}
	if s.authorizer.IsAuthorized(caller, authz.ActionManageOtherOrganization) {
		return nil
	}
	return errorutil.NewForbidden("not authorized to manage another organization")
}

func (s *AffiliationService) publish(ctx context.Context, eventType events.EventType, caller *auth.Principal, aff *domain.Affiliation, withoutAuth bool) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(eventType, actorOf(s.authorizer, caller), aff.AccountID, aff.BusinessIdentifier,
		events.AffiliationPayload{AffiliationID: aff.ID, Nickname: aff.Nickname, WithoutAuth: withoutAuth})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish affiliation event", zap.String("type", string(eventType)), zap.Error(err))
	}
}

func actorOf(authorizer *authz.Authorizer, caller *auth.Principal) events.Actor {
	if caller == nil {
		return events.Actor{}
	}
	return events.Actor{
		SubjectID: caller.SubjectID,
		Username:  caller.Username,
		Category:  string(authorizer.Category(caller)),
	}
}
