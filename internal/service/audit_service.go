package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/growid-bridge/internal/events"
	"github.com/spec-kit/growid-bridge/internal/observability"
)

// AuditService records credential lifecycle events in logs and metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventCredentialIssued, a.handleCredentialIssued)
	a.dispatcher.Subscribe(events.EventCredentialReissued, a.handleCredentialReissued)
	a.dispatcher.Subscribe(events.EventCredentialRejected, a.handleCredentialRejected)
}

func (a *AuditService) handleCredentialIssued(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("grow_id", event.GrowID)}
	if p, ok := event.Payload.(events.CredentialIssuedPayload); ok {
		fields = append(fields, zap.Time("expires_at", p.ExpiresAt))
	}
	a.logger.Info("CredentialIssued", fields...)
	a.metrics.RecordCredential(observability.OutcomeIssued, "")
	return nil
}

func (a *AuditService) handleCredentialReissued(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("grow_id", event.GrowID)}
	if p, ok := event.Payload.(events.CredentialReissuedPayload); ok {
		fields = append(fields, zap.Time("expires_at", p.ExpiresAt), zap.Int("client_data_bytes", p.ClientDataBytes))
	}
	a.logger.Info("CredentialReissued", fields...)
	a.metrics.RecordCredential(observability.OutcomeReissued, "")
	return nil
}

func (a *AuditService) handleCredentialRejected(_ context.Context, event events.Event) error {
	p, _ := event.Payload.(events.CredentialRejectedPayload)
	a.logger.Warn("CredentialRejected",
		zap.String("event_id", event.ID),
		zap.String("reason", string(p.Reason)),
		zap.String("code", p.Code),
		zap.String("cause", p.Cause))
	a.metrics.RecordCredential(observability.OutcomeRejected, string(p.Reason))
	return nil
}
