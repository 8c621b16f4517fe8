package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/wa-group-directory/internal/events"
)

// AuditService writes an audit line for every admin mutation. Listings are
// public data, so a structured log is the whole audit trail; there is no
// audit table.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to group mutation events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventGroupCreated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventGroupUpdated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventGroupStatusChanged, a.handleEvent)
	a.dispatcher.Subscribe(events.EventGroupDeleted, a.handleEvent)
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("group audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Int64("group_id", event.GroupID),
		zap.String("admin", event.Actor.Username),
		zap.Any("payload", event.Payload),
	)
	return nil
}
