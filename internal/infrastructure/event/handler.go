package event

import (
	"context"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

// funcHandler adapts a function to shared.EventHandler. It is used by
// pointer so the registry can compare handlers.
type funcHandler struct {
	types []string
	fn    func(ctx context.Context, event shared.DomainEvent) error
}

// HandlerFunc wraps fn as a handler for eventTypes, or all events when empty
func HandlerFunc(fn func(ctx context.Context, event shared.DomainEvent) error, eventTypes ...string) shared.EventHandler {
	return &funcHandler{types: eventTypes, fn: fn}
}

func (h *funcHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	return h.fn(ctx, event)
}

func (h *funcHandler) EventTypes() []string {
	return h.types
}
