package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is what PublishAndClear needs from an aggregate
type AggregateRoot interface {
	GetID() uuid.UUID
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEntity carries identity and timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh id and stamps both timestamps with now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

// BaseAggregateRoot adds an optimistic-lock version, the creating actor and
// events waiting to be published. Version starts at 1 and is checked by
// SaveWithVersion style repository methods.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	CreatedBy    *uuid.UUID
	domainEvents []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// SetCreatedBy records the actor; the nil id of the system actor is ignored
func (a *BaseAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	if userID != uuid.Nil {
		a.CreatedBy = &userID
	}
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.domainEvents }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.domainEvents = nil }
