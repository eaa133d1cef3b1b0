package testutil

import (
	"context"
	"sync"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

// Publisher records published domain events in memory
type Publisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

// NewPublisher returns an empty recording publisher
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish implements shared.EventPublisher
func (p *Publisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

// FailWith makes every later Publish return err
func (p *Publisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Events returns a copy of the recorded events
func (p *Publisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

// Types returns the recorded event types in publish order
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

// Reset drops the recorded events and any injected failure
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.err = nil
}
