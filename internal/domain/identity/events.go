package identity

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const AggregateTypeUser = "User"

const (
	EventTypeUserCreated         = "UserCreated"
	EventTypeUserUpdated         = "UserUpdated"
	EventTypeUserRoleChanged     = "UserRoleChanged"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
	EventTypeUserStatusChanged   = "UserStatusChanged"
	EventTypeUserLocked          = "UserLocked"
)

// UserEvent covers account changes
type UserEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// NewUserEvent creates a user event of the given type
func NewUserEvent(eventType string, u *User) *UserEvent {
	return &UserEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeUser, u.ID),
		Username:        u.Username,
		Role:            string(u.Role),
		Status:          string(u.Status),
	}
}

func (e *UserEvent) Describe() string {
	switch e.Type {
	case EventTypeUserCreated:
		return fmt.Sprintf("Created user %s with role %s", e.Username, e.Role)
	case EventTypeUserRoleChanged:
		return fmt.Sprintf("Changed role of %s to %s", e.Username, e.Role)
	case EventTypeUserPasswordChanged:
		return fmt.Sprintf("Changed password of %s", e.Username)
	case EventTypeUserStatusChanged:
		return fmt.Sprintf("User %s is now %s", e.Username, e.Status)
	case EventTypeUserLocked:
		return fmt.Sprintf("Locked %s after repeated failed logins", e.Username)
	}
	return fmt.Sprintf("Updated user %s", e.Username)
}
