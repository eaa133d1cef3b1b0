package shared

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// Actor identifies who is performing an operation
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
	IP   string
}

// IsSystem reports whether no user is attached
func (a Actor) IsSystem() bool {
	return a.ID == uuid.Nil
}

// SystemActor is used for work not initiated by a user
var SystemActor = Actor{Name: "system", Role: "system"}

// WithActor attaches the actor to the context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor attached to ctx, or SystemActor
func ActorFromContext(ctx context.Context) Actor {
	if ctx == nil {
		return SystemActor
	}
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return SystemActor
}
