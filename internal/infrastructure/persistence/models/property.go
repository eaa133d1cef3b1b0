package models

import (
	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// OwnerModel is the persistence model for owners
type OwnerModel struct {
	AggregateModel
	Code    string               `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name    string               `gorm:"type:varchar(200);not null;index"`
	Email   string               `gorm:"type:varchar(200)"`
	Phone   string               `gorm:"type:varchar(50)"`
	Address string               `gorm:"type:text"`
	TIN     string               `gorm:"column:tin;type:varchar(30)"`
	Status  property.OwnerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the model to a domain Owner
func (m *OwnerModel) ToDomain() *property.Owner {
	return &property.Owner{
		BaseAggregateRoot: m.aggregate(),
		Code:              m.Code,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		TIN:               m.TIN,
		Status:            m.Status,
	}
}

// OwnerModelFromDomain creates a model from a domain Owner
func OwnerModelFromDomain(o *property.Owner) *OwnerModel {
	m := &OwnerModel{
		Code:    o.Code,
		Name:    o.Name,
		Email:   o.Email,
		Phone:   o.Phone,
		Address: o.Address,
		TIN:     o.TIN,
		Status:  o.Status,
	}
	m.setAggregate(o.BaseAggregateRoot)
	return m
}

// PropertyModel is the persistence model for properties
type PropertyModel struct {
	AggregateModel
	Code    string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name    string          `gorm:"type:varchar(200);not null;index"`
	OwnerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type    property.Type   `gorm:"type:varchar(20);not null"`
	Address string          `gorm:"type:text"`
	City    string          `gorm:"type:varchar(100)"`
	Status  property.Status `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseAggregateRoot: m.aggregate(),
		Code:              m.Code,
		Name:              m.Name,
		OwnerID:           m.OwnerID,
		Type:              m.Type,
		Address:           m.Address,
		City:              m.City,
		Status:            m.Status,
	}
}

// PropertyModelFromDomain creates a model from a domain Property
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{
		Code:    p.Code,
		Name:    p.Name,
		OwnerID: p.OwnerID,
		Type:    p.Type,
		Address: p.Address,
		City:    p.City,
		Status:  p.Status,
	}
	m.setAggregate(p.BaseAggregateRoot)
	return m
}

// UnitModel is the persistence model for units
type UnitModel struct {
	AggregateModel
	PropertyID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_units_property_number"`
	UnitNumber  string              `gorm:"type:varchar(20);not null;uniqueIndex:idx_units_property_number"`
	Floor       int                 `gorm:"not null;default:0"`
	AreaSqm     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	MonthlyRent decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Status      property.UnitStatus `gorm:"type:varchar(20);not null;default:'vacant';index"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the model to a domain Unit
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		BaseAggregateRoot: m.aggregate(),
		PropertyID:        m.PropertyID,
		UnitNumber:        m.UnitNumber,
		Floor:             m.Floor,
		AreaSqm:           m.AreaSqm,
		MonthlyRent:       m.MonthlyRent,
		Status:            m.Status,
	}
}

// UnitModelFromDomain creates a model from a domain Unit
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{
		PropertyID:  u.PropertyID,
		UnitNumber:  u.UnitNumber,
		Floor:       u.Floor,
		AreaSqm:     u.AreaSqm,
		MonthlyRent: u.MonthlyRent,
		Status:      u.Status,
	}
	m.setAggregate(u.BaseAggregateRoot)
	return m
}
