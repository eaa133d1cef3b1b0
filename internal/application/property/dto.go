package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// ListInput carries the paging and search values of a list request
type ListInput struct {
	Search   string
	Status   string
	Type     string
	OwnerID  string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// OwnerInput contains the fields of an owner form
type OwnerInput struct {
	Code    string
	Name    string
	Email   string
	Phone   string
	Address string
	TIN     string
}

func (in OwnerInput) details() property.OwnerDetails {
	return property.OwnerDetails{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		TIN:     in.TIN,
	}
}

// OwnerDTO represents an owner in responses
type OwnerDTO struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	TIN           string    `json:"tin,omitempty"`
	Status        string    `json:"status"`
	PropertyCount int64     `json:"property_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToOwnerDTO converts a domain owner
func ToOwnerDTO(o *property.Owner) OwnerDTO {
	return OwnerDTO{
		ID:        o.ID,
		Code:      o.Code,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		TIN:       o.TIN,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Version:   o.Version,
	}
}

// PropertyInput contains the fields of a property form
type PropertyInput struct {
	Code    string
	OwnerID uuid.UUID
	Name    string
	Type    string
	Address string
	City    string
}

func (in PropertyInput) details() property.PropertyDetails {
	return property.PropertyDetails{
		Name:    in.Name,
		Type:    property.Type(in.Type),
		Address: in.Address,
		City:    in.City,
	}
}

// PropertyDTO represents a property in responses
type PropertyDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	OwnerName string    `json:"owner_name,omitempty"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Status    string    `json:"status"`
	UnitCount int64     `json:"unit_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToPropertyDTO converts a domain property
func ToPropertyDTO(p *property.Property) PropertyDTO {
	return PropertyDTO{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		Type:      string(p.Type),
		Address:   p.Address,
		City:      p.City,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

// UnitInput contains the fields of a unit form
type UnitInput struct {
	PropertyID  uuid.UUID
	UnitNumber  string
	Floor       int
	AreaSqm     decimal.Decimal
	MonthlyRent decimal.Decimal
}

func (in UnitInput) details() property.UnitDetails {
	return property.UnitDetails{
		UnitNumber:  in.UnitNumber,
		Floor:       in.Floor,
		AreaSqm:     in.AreaSqm,
		MonthlyRent: in.MonthlyRent,
	}
}

// UnitListInput filters the unit list
type UnitListInput struct {
	ListInput
	PropertyID string
}

// UnitDTO represents a unit in responses
type UnitDTO struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	UnitNumber  string          `json:"unit_number"`
	Floor       int             `json:"floor"`
	AreaSqm     decimal.Decimal `json:"area_sqm"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToUnitDTO converts a domain unit
func ToUnitDTO(u *property.Unit) UnitDTO {
	return UnitDTO{
		ID:          u.ID,
		PropertyID:  u.PropertyID,
		UnitNumber:  u.UnitNumber,
		Floor:       u.Floor,
		AreaSqm:     u.AreaSqm,
		MonthlyRent: u.MonthlyRent,
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Version:     u.Version,
	}
}

// UnitTransition names a unit status change
type UnitTransition string

const (
	TransitionOccupy      UnitTransition = "occupy"
	TransitionVacate      UnitTransition = "vacate"
	TransitionMaintenance UnitTransition = "maintenance"
)
