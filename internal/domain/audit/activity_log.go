package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// Action classifies an activity log entry
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionStatus Action = "status_change"
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
	ActionExport Action = "export"
)

// ActivityLog is an append-only record of something a user did
type ActivityLog struct {
	ID          uuid.UUID
	ActorID     *uuid.UUID
	ActorName   string
	Role        string
	Action      Action
	EntityType  string
	EntityID    *uuid.UUID
	Description string
	IP          string
	Timestamp   time.Time
}

// NewActivityLog stamps a new entry for actor
func NewActivityLog(actor shared.Actor, action Action, entityType string, entityID uuid.UUID, description string) *ActivityLog {
	l := &ActivityLog{
		ID:          uuid.New(),
		ActorName:   actor.Name,
		Role:        actor.Role,
		Action:      action,
		EntityType:  entityType,
		Description: strings.TrimSpace(description),
		IP:          actor.IP,
		Timestamp:   time.Now(),
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		l.ActorID = &id
	}
	if entityID != uuid.Nil {
		id := entityID
		l.EntityID = &id
	}
	if l.ActorName == "" {
		l.ActorName = shared.SystemActor.Name
	}
	return l
}

// ActionForEvent maps a domain event type to an action by its verb suffix
func ActionForEvent(eventType string) Action {
	switch {
	case strings.HasSuffix(eventType, "Created"), strings.HasSuffix(eventType, "Requested"),
		strings.HasSuffix(eventType, "Started"), strings.HasSuffix(eventType, "Posted"),
		strings.HasSuffix(eventType, "Issued"), strings.HasSuffix(eventType, "Recorded"):
		return ActionCreate
	case strings.HasSuffix(eventType, "Deleted"):
		return ActionDelete
	case strings.HasSuffix(eventType, "StatusChanged"), strings.HasSuffix(eventType, "Approved"),
		strings.HasSuffix(eventType, "Rejected"), strings.HasSuffix(eventType, "Cancelled"),
		strings.HasSuffix(eventType, "Completed"), strings.HasSuffix(eventType, "Resigned"),
		strings.HasSuffix(eventType, "Terminated"), strings.HasSuffix(eventType, "Locked"):
		return ActionStatus
	}
	return ActionUpdate
}

// Query filters activity logs. Zero values match everything.
type Query struct {
	ActorID    *uuid.UUID
	Action     Action
	EntityType string
	From       *time.Time
	To         *time.Time
	Search     string
	Page       int
	PageSize   int
}

// Repository stores activity logs. Find orders newest first.
type Repository interface {
	Append(ctx context.Context, log *ActivityLog) error
	Find(ctx context.Context, q Query) ([]ActivityLog, int64, error)
}
