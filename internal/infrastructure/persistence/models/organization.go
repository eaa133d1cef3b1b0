package models

import (
	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/organization"
)

// DepartmentModel is the persistence model for departments
type DepartmentModel struct {
	AggregateModel
	Code           string                        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string                        `gorm:"type:varchar(200);not null"`
	Description    string                        `gorm:"type:text"`
	ParentID       *uuid.UUID                    `gorm:"type:uuid;index"`
	Path           string                        `gorm:"type:varchar(2000);index"`
	Level          int                           `gorm:"not null;default:0"`
	SortOrder      int                           `gorm:"not null;default:0"`
	HeadEmployeeID *uuid.UUID                    `gorm:"type:uuid"`
	Status         organization.DepartmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the model to a domain Department
func (m *DepartmentModel) ToDomain() *organization.Department {
	return &organization.Department{
		BaseAggregateRoot: m.aggregate(),
		Code:              m.Code,
		Name:              m.Name,
		Description:       m.Description,
		ParentID:          m.ParentID,
		Path:              m.Path,
		Level:             m.Level,
		SortOrder:         m.SortOrder,
		HeadEmployeeID:    m.HeadEmployeeID,
		Status:            m.Status,
	}
}

// DepartmentModelFromDomain creates a model from a domain Department
func DepartmentModelFromDomain(d *organization.Department) *DepartmentModel {
	m := &DepartmentModel{
		Code:           d.Code,
		Name:           d.Name,
		Description:    d.Description,
		ParentID:       d.ParentID,
		Path:           d.Path,
		Level:          d.Level,
		SortOrder:      d.SortOrder,
		HeadEmployeeID: d.HeadEmployeeID,
		Status:         d.Status,
	}
	m.setAggregate(d.BaseAggregateRoot)
	return m
}

// PositionModel is the persistence model for positions
type PositionModel struct {
	AggregateModel
	Code         string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Title        string     `gorm:"type:varchar(200);not null"`
	DepartmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReportsToID  *uuid.UUID `gorm:"type:uuid;index"`
	Level        int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PositionModel) TableName() string {
	return "positions"
}

// ToDomain converts the model to a domain Position
func (m *PositionModel) ToDomain() *organization.Position {
	return &organization.Position{
		BaseAggregateRoot: m.aggregate(),
		Code:              m.Code,
		Title:             m.Title,
		DepartmentID:      m.DepartmentID,
		ReportsToID:       m.ReportsToID,
		Level:             m.Level,
	}
}

// PositionModelFromDomain creates a model from a domain Position
func PositionModelFromDomain(p *organization.Position) *PositionModel {
	m := &PositionModel{
		Code:         p.Code,
		Title:        p.Title,
		DepartmentID: p.DepartmentID,
		ReportsToID:  p.ReportsToID,
		Level:        p.Level,
	}
	m.setAggregate(p.BaseAggregateRoot)
	return m
}
