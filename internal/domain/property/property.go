package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// Type is the use classification of a property
type Type string

const (
	TypeResidential Type = "residential"
	TypeCommercial  Type = "commercial"
	TypeMixed       Type = "mixed"
	TypeLand        Type = "land"
)

// IsValid reports whether t is a known type
func (t Type) IsValid() bool {
	switch t {
	case TypeResidential, TypeCommercial, TypeMixed, TypeLand:
		return true
	}
	return false
}

// Status is the lifecycle state of a property
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Property is a building or lot managed for an owner
type Property struct {
	shared.BaseAggregateRoot
	Code    string
	Name    string
	OwnerID uuid.UUID
	Type    Type
	Address string
	City    string
	Status  Status
}

// PropertyDetails holds the editable fields of a property
type PropertyDetails struct {
	Name    string
	Type    Type
	Address string
	City    string
}

// NewProperty creates an active property for an owner
func NewProperty(code string, ownerID uuid.UUID, details PropertyDetails) (*Property, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "owner is required")
	}
	p := &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		OwnerID:           ownerID,
		Status:            StatusActive,
	}
	if err := p.apply(details); err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewPropertyEvent(EventTypePropertyCreated, p))
	return p, nil
}

// Update replaces the editable fields
func (p *Property) Update(details PropertyDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.touch()
	p.AddDomainEvent(NewPropertyEvent(EventTypePropertyUpdated, p))
	return nil
}

// TransferOwnership assigns the property to another owner
func (p *Property) TransferOwnership(ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "owner is required")
	}
	if ownerID == p.OwnerID {
		return shared.NewDomainError("INVALID_OWNER", "property already belongs to this owner")
	}
	p.OwnerID = ownerID
	p.touch()
	p.AddDomainEvent(NewPropertyEvent(EventTypePropertyTransferred, p))
	return nil
}

// SetStatus activates or deactivates the property
func (p *Property) SetStatus(status Status) error {
	if status != StatusActive && status != StatusInactive {
		return shared.NewDomainError("INVALID_STATUS", "status must be active or inactive")
	}
	if p.Status == status {
		return nil
	}
	p.Status = status
	p.touch()
	p.AddDomainEvent(NewPropertyEvent(EventTypePropertyUpdated, p))
	return nil
}

func (p *Property) apply(d PropertyDetails) error {
	name := strings.Join(strings.Fields(d.Name), " ")
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "property name cannot exceed 200 characters")
	}
	if d.Type == "" {
		d.Type = TypeResidential
	}
	if !d.Type.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "property type must be residential, commercial, mixed or land")
	}
	p.Name = name
	p.Type = d.Type
	p.Address = strings.TrimSpace(d.Address)
	p.City = NormalizeName(d.City)
	return nil
}

func (p *Property) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
