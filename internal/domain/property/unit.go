package property

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnitStatus is the occupancy state of a unit
type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "vacant"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

// Unit is a rentable space inside a property
type Unit struct {
	shared.BaseAggregateRoot
	PropertyID  uuid.UUID
	UnitNumber  string
	Floor       int
	AreaSqm     decimal.Decimal
	MonthlyRent decimal.Decimal
	Status      UnitStatus
}

// UnitDetails holds the editable fields of a unit
type UnitDetails struct {
	UnitNumber  string
	Floor       int
	AreaSqm     decimal.Decimal
	MonthlyRent decimal.Decimal
}

// NewUnit creates a vacant unit
func NewUnit(propertyID uuid.UUID, details UnitDetails) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "property is required")
	}
	u := &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Status:            UnitStatusVacant,
	}
	if err := u.apply(details); err != nil {
		return nil, err
	}
	u.AddDomainEvent(NewUnitEvent(EventTypeUnitCreated, u))
	return u, nil
}

// Update replaces the editable fields
func (u *Unit) Update(details UnitDetails) error {
	if err := u.apply(details); err != nil {
		return err
	}
	u.touch()
	u.AddDomainEvent(NewUnitEvent(EventTypeUnitUpdated, u))
	return nil
}

// Occupy marks a vacant unit as occupied
func (u *Unit) Occupy() error {
	if u.Status != UnitStatusVacant {
		return shared.NewDomainErrorf("INVALID_STATE", "unit %s is %s and cannot be occupied", u.UnitNumber, u.Status)
	}
	return u.transition(UnitStatusOccupied)
}

// Vacate frees an occupied or maintained unit
func (u *Unit) Vacate() error {
	if u.Status == UnitStatusVacant {
		return shared.NewDomainErrorf("INVALID_STATE", "unit %s is already vacant", u.UnitNumber)
	}
	return u.transition(UnitStatusVacant)
}

// MarkMaintenance takes a vacant unit off the market
func (u *Unit) MarkMaintenance() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainErrorf("INVALID_STATE", "unit %s is occupied", u.UnitNumber)
	}
	if u.Status == UnitStatusMaintenance {
		return nil
	}
	return u.transition(UnitStatusMaintenance)
}

func (u *Unit) transition(status UnitStatus) error {
	u.Status = status
	u.touch()
	u.AddDomainEvent(NewUnitEvent(EventTypeUnitStatusChanged, u))
	return nil
}

func (u *Unit) apply(d UnitDetails) error {
	number := strings.ToUpper(strings.TrimSpace(d.UnitNumber))
	if number == "" {
		return shared.NewDomainError("INVALID_UNIT_NUMBER", "unit number cannot be empty")
	}
	if len(number) > 20 {
		return shared.NewDomainError("INVALID_UNIT_NUMBER", "unit number cannot exceed 20 characters")
	}
	if d.AreaSqm.IsNegative() {
		return shared.NewDomainError("INVALID_AREA", "area cannot be negative")
	}
	if d.MonthlyRent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "monthly rent cannot be negative")
	}
	u.UnitNumber = number
	u.Floor = d.Floor
	u.AreaSqm = d.AreaSqm.Round(2)
	u.MonthlyRent = d.MonthlyRent.Round(2)
	return nil
}

func (u *Unit) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
