package property

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const (
	AggregateTypeOwner    = "Owner"
	AggregateTypeProperty = "Property"
	AggregateTypeUnit     = "Unit"
)

const (
	EventTypeOwnerCreated        = "OwnerCreated"
	EventTypeOwnerUpdated        = "OwnerUpdated"
	EventTypeOwnerDeleted        = "OwnerDeleted"
	EventTypePropertyCreated     = "PropertyCreated"
	EventTypePropertyUpdated     = "PropertyUpdated"
	EventTypePropertyTransferred = "PropertyTransferred"
	EventTypePropertyDeleted     = "PropertyDeleted"
	EventTypeUnitCreated         = "UnitCreated"
	EventTypeUnitUpdated         = "UnitUpdated"
	EventTypeUnitStatusChanged   = "UnitStatusChanged"
	EventTypeUnitDeleted         = "UnitDeleted"
)

// OwnerEvent covers owner lifecycle changes
type OwnerEvent struct {
	shared.BaseDomainEvent
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// NewOwnerEvent creates an owner event of the given type
func NewOwnerEvent(eventType string, o *Owner) *OwnerEvent {
	return &OwnerEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeOwner, o.ID),
		Code:            o.Code,
		Name:            o.Name,
		Status:          string(o.Status),
	}
}

func (e *OwnerEvent) Describe() string {
	switch e.Type {
	case EventTypeOwnerCreated:
		return fmt.Sprintf("Created owner %s (%s)", e.Code, e.Name)
	case EventTypeOwnerDeleted:
		return fmt.Sprintf("Deleted owner %s (%s)", e.Code, e.Name)
	}
	return fmt.Sprintf("Updated owner %s (%s), status %s", e.Code, e.Name, e.Status)
}

// PropertyEvent covers property lifecycle changes
type PropertyEvent struct {
	shared.BaseDomainEvent
	Code    string `json:"code"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
}

// NewPropertyEvent creates a property event of the given type
func NewPropertyEvent(eventType string, p *Property) *PropertyEvent {
	return &PropertyEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProperty, p.ID),
		Code:            p.Code,
		Name:            p.Name,
		OwnerID:         p.OwnerID.String(),
		Status:          string(p.Status),
	}
}

func (e *PropertyEvent) Describe() string {
	switch e.Type {
	case EventTypePropertyCreated:
		return fmt.Sprintf("Created property %s (%s)", e.Code, e.Name)
	case EventTypePropertyTransferred:
		return fmt.Sprintf("Transferred property %s to owner %s", e.Code, e.OwnerID)
	case EventTypePropertyDeleted:
		return fmt.Sprintf("Deleted property %s (%s)", e.Code, e.Name)
	}
	return fmt.Sprintf("Updated property %s (%s), status %s", e.Code, e.Name, e.Status)
}

// UnitEvent covers unit changes
type UnitEvent struct {
	shared.BaseDomainEvent
	PropertyID string `json:"property_id"`
	UnitNumber string `json:"unit_number"`
	Status     string `json:"status"`
}

// NewUnitEvent creates a unit event of the given type
func NewUnitEvent(eventType string, u *Unit) *UnitEvent {
	return &UnitEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeUnit, u.ID),
		PropertyID:      u.PropertyID.String(),
		UnitNumber:      u.UnitNumber,
		Status:          string(u.Status),
	}
}

func (e *UnitEvent) Describe() string {
	switch e.Type {
	case EventTypeUnitCreated:
		return fmt.Sprintf("Created unit %s", e.UnitNumber)
	case EventTypeUnitStatusChanged:
		return fmt.Sprintf("Unit %s is now %s", e.UnitNumber, e.Status)
	case EventTypeUnitDeleted:
		return fmt.Sprintf("Deleted unit %s", e.UnitNumber)
	}
	return fmt.Sprintf("Updated unit %s", e.UnitNumber)
}
