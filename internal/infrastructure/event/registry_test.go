package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_RegisterAndGet(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := &recordingHandler{}
	wildcard := &recordingHandler{}

	registry.Register(typed, "LeaveApproved", "LeaveRejected")
	registry.Register(typed, "LeaveApproved")
	registry.Register(wildcard)

	handlers := registry.GetHandlers("LeaveApproved")
	assert.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, wildcard, handlers[1])

	assert.Len(t, registry.GetHandlers("OwnerCreated"), 1)
	assert.Equal(t, 2, registry.Len())
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	a := &recordingHandler{}
	b := &recordingHandler{}
	registry.Register(a, "UnitOccupied")
	registry.Register(b, "UnitOccupied")
	registry.Register(a)

	registry.Unregister(a)

	handlers := registry.GetHandlers("UnitOccupied")
	assert.Len(t, handlers, 1)
	assert.Same(t, b, handlers[0])
	assert.Equal(t, 1, registry.Len())
}
