package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/registry-dashboard/internal/alerts"
	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/internal/events"
	"github.com/spec-kit/registry-dashboard/internal/legalapi"
	"github.com/spec-kit/registry-dashboard/pkg/errorutil"
)

// BusinessReader looks up a business record.
type BusinessReader interface {
	GetBusiness(ctx context.Context, businessID string) (*domain.Business, error)
}

// LegalClient is the subset of the legal API used by the dashboard.
type LegalClient interface {
	BusinessReader
	GetAddresses(ctx context.Context, businessID string) (*domain.IncorporationAddress, error)
	GetResolutions(ctx context.Context, businessID string) ([]domain.Resolution, error)
	CreateRestorationDraft(ctx context.Context, businessID string, kind domain.RestorationType) (int64, error)
}

// BusinessView is a business record with its derived alerts.
type BusinessView struct {
	Business *domain.Business
	Alerts   []domain.EntityAlertType
}

// BusinessService forwards business reads to the legal API.
type BusinessService struct {
	legal      LegalClient
	authorizer *authz.Authorizer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewBusinessService creates the service.
func NewBusinessService(legal LegalClient, authorizer *authz.Authorizer, dispatcher events.Dispatcher, logger *zap.Logger) *BusinessService {
	return &BusinessService{
		legal:      legal,
		authorizer: authorizer,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the business and its alert tags.
func (s *BusinessService) Get(ctx context.Context, businessID string) (*BusinessView, error) {
	b, err := s.legal.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, mapLegalError(err, businessID)
	}
	return &BusinessView{Business: b, Alerts: alerts.For(b, s.now())}, nil
}

// Addresses returns the office addresses of a business.
func (s *BusinessService) Addresses(ctx context.Context, businessID string) (*domain.IncorporationAddress, error) {
	addr, err := s.legal.GetAddresses(ctx, businessID)
	if err != nil {
		return nil, mapLegalError(err, businessID)
	}
	return addr, nil
}

// Resolutions returns the resolutions of a business.
func (s *BusinessService) Resolutions(ctx context.Context, businessID string) ([]domain.Resolution, error) {
	res, err := s.legal.GetResolutions(ctx, businessID)
	if err != nil {
		return nil, mapLegalError(err, businessID)
	}
	return res, nil
}

// StartRestoration creates a draft restoration or reinstatement filing.
func (s *BusinessService) StartRestoration(ctx context.Context, caller *auth.Principal, businessID string, kind domain.RestorationType) (int64, error) {
	if !s.authorizer.IsAuthorized(caller, authz.ActionRestoreOrReinstate) {
		return 0, errorutil.NewForbidden("not authorized to restore or reinstate")
	}
	filingID, err := s.legal.CreateRestorationDraft(ctx, businessID, kind)
	if err != nil {
		return 0, mapLegalError(err, businessID)
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventRestorationDraftCreated, actorOf(s.authorizer, caller), "", businessID,
			events.RestorationDraftPayload{FilingID: filingID, RestorationType: string(kind)})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish restoration event", zap.Error(err))
		}
	}
	return filingID, nil
}

func mapLegalError(err error, businessID string) error {
	switch {
	case errors.Is(err, legalapi.ErrMissingBusinessID):
		return errorutil.NewValidationError("business identifier required", nil)
	case errors.Is(err, legalapi.ErrNotFound):
		return errorutil.NewNotFound("business", map[string]any{"identifier": businessID})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errorutil.NewBadGateway("legal api request cancelled", err)
	}
	var apiErr *legalapi.Error
	if errors.As(err, &apiErr) && apiErr.Status == 401 {
		return errorutil.NewUnauthorized("legal api rejected credentials")
	}
	if errors.As(err, &apiErr) && apiErr.Status == 403 {
		return errorutil.NewForbidden("legal api denied access")
	}
	return errorutil.NewBadGateway("legal api request failed", err)
}
