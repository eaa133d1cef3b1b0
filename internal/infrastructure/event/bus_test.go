package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Owner", uuid.New())}
}

type recordingHandler struct {
	mu      sync.Mutex
	types   []string
	handled []string
	err     error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event.EventType())
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	owners := &recordingHandler{types: []string{"OwnerCreated"}}
	all := &recordingHandler{}
	bus.Subscribe(owners)
	bus.Subscribe(all)

	err := bus.Publish(context.Background(), newTestEvent("OwnerCreated"), newTestEvent("UnitCreated"))
	require.NoError(t, err)

	assert.Equal(t, []string{"OwnerCreated"}, owners.seen())
	assert.Equal(t, []string{"OwnerCreated", "UnitCreated"}, all.seen())
}

func TestInMemoryEventBus_FailingHandlerDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := &recordingHandler{err: errors.New("boom")}
	panicking := HandlerFunc(func(context.Context, shared.DomainEvent) error { panic("kaboom") })
	healthy := &recordingHandler{}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OwnerUpdated")))

	assert.Equal(t, []string{"OwnerUpdated"}, healthy.seen())
	assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := &recordingHandler{types: []string{"OwnerCreated"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OwnerCreated")))
	assert.Empty(t, handler.seen())
}

func TestInMemoryEventBus_StopDropsLaterEvents(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := &recordingHandler{}
	bus.Subscribe(handler)
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, newTestEvent("OwnerCreated")))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(stopCtx))

	require.NoError(t, bus.Publish(ctx, newTestEvent("OwnerDeleted")))
	assert.Equal(t, []string{"OwnerCreated"}, handler.seen())
}

func TestInMemoryEventBus_StopWaitsForInflight(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	release := make(chan struct{})
	entered := make(chan struct{})
	bus.Subscribe(HandlerFunc(func(context.Context, shared.DomainEvent) error {
		close(entered)
		<-release
		return nil
	}))

	go func() { _ = bus.Publish(context.Background(), newTestEvent("OwnerCreated")) }()
	<-entered

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Stop(short), context.DeadlineExceeded)

	close(release)
	long, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	assert.NoError(t, bus.Stop(long))
}
