package audit

import (
	"context"

	"github.com/realtyadmin/backend/internal/domain/audit"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityRecorder writes an activity log entry for every domain event.
// The actor is taken from the publishing request's context.
type ActivityRecorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewActivityRecorder creates a new recorder
func NewActivityRecorder(repo audit.Repository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger}
}

// EventTypes returns nil: the recorder receives all events
func (r *ActivityRecorder) EventTypes() []string {
	return nil
}

// Handle appends the entry for event
func (r *ActivityRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	description := event.EventType()
	if described, ok := event.(shared.DescribedEvent); ok {
		description = described.Describe()
	}

	entry := audit.NewActivityLog(
		shared.ActorFromContext(ctx),
		audit.ActionForEvent(event.EventType()),
		event.AggregateType(),
		event.AggregateID(),
		description,
	)
	entry.Timestamp = event.OccurredAt()

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Error("Failed to record activity",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*ActivityRecorder)(nil)
