package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/registry-dashboard/internal/events"
)

// AuditService records domain events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger.Named("audit")}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventAffiliationAdded, a.handle)
	a.dispatcher.Subscribe(events.EventAffiliationRemoved, a.handle)
	a.dispatcher.Subscribe(events.EventAuthorizationsChanged, a.handle)
	a.dispatcher.Subscribe(events.EventRestorationDraftCreated, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("account_id", event.AccountID),
		zap.String("business_identifier", event.Business),
		zap.String("actor", event.Actor.SubjectID),
		zap.String("actor_category", event.Actor.Category),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
	return nil
}
