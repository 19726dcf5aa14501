package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/config"
	"github.com/spec-kit/justiceconnect/internal/events"
)

// NotificationService reacts to case events. Delivery is a stub for now:
// outgoing messages are logged with enough structure for an operator to trace
// them, and the webhook/email integrations plug in behind the same methods.
type NotificationService struct {
	cfg    config.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{cfg: cfg, logger: logger}
}

// RegisterSubscribers wires the service into the dispatcher.
func (s *NotificationService) RegisterSubscribers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventCaseCreated, s.onCaseCreated)
	dispatcher.Subscribe(events.EventCaseAssigned, s.onCaseAssigned)
	dispatcher.Subscribe(events.EventCaseStatusChanged, s.onCaseStatusChanged)
}

func (s *NotificationService) onCaseCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CaseCreatedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notify: case received",
		zap.String("case_id", event.CaseID),
		zap.String("urgency", string(payload.Urgency)),
		zap.String("email_from", s.cfg.EmailFrom))
	return nil
}

func (s *NotificationService) onCaseAssigned(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CaseAssignedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notify: case assigned",
		zap.String("case_id", event.CaseID),
		zap.String("lawyer_name", payload.LawyerName))
	return nil
}

func (s *NotificationService) onCaseStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CaseStatusChangedPayload)
	if !ok {
		return nil
	}
	s.logger.Info("notify: case status changed",
		zap.String("case_id", event.CaseID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	return nil
}
