package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
)

// ChecklistTemplateModel is the persistence model for department checklist templates
type ChecklistTemplateModel struct {
	AggregateModel
	DepartmentID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex"`
	Tasks        []ChecklistTemplateTaskModel `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ChecklistTemplateModel) TableName() string {
	return "checklist_templates"
}

// ChecklistTemplateTaskModel is one row of a template
type ChecklistTemplateTaskModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text       string    `gorm:"type:varchar(200);not null"`
	Position   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChecklistTemplateTaskModel) TableName() string {
	return "checklist_template_tasks"
}

// ToDomain converts the model to a domain ChecklistTemplate. Tasks must be
// preloaded in position order.
func (m *ChecklistTemplateModel) ToDomain() *clearance.ChecklistTemplate {
	tasks := make([]clearance.TemplateTask, len(m.Tasks))
	for i, t := range m.Tasks {
		tasks[i] = clearance.TemplateTask{ID: t.ID, Text: t.Text, Position: t.Position}
	}
	return &clearance.ChecklistTemplate{
		BaseAggregateRoot: m.aggregate(),
		DepartmentID:      m.DepartmentID,
		Tasks:             tasks,
	}
}

// ChecklistTemplateModelFromDomain creates a model from a domain ChecklistTemplate
func ChecklistTemplateModelFromDomain(t *clearance.ChecklistTemplate) *ChecklistTemplateModel {
	m := &ChecklistTemplateModel{
		DepartmentID: t.DepartmentID,
		Tasks:        make([]ChecklistTemplateTaskModel, len(t.Tasks)),
	}
	m.setAggregate(t.BaseAggregateRoot)
	for i, task := range t.Tasks {
		m.Tasks[i] = ChecklistTemplateTaskModel{
			ID:         task.ID,
			TemplateID: t.ID,
			Text:       task.Text,
			Position:   task.Position,
		}
	}
	return m
}

// ClearanceModel is the persistence model for employee clearances
type ClearanceModel struct {
	AggregateModel
	EmployeeID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	DepartmentID uuid.UUID            `gorm:"type:uuid;not null;index"`
	TemplateID   uuid.UUID            `gorm:"type:uuid;not null"`
	Status       clearance.Status     `gorm:"type:varchar(20);not null;default:'open';index"`
	StartedAt    time.Time            `gorm:"not null"`
	CompletedAt  *time.Time
	Tasks        []ClearanceTaskModel `gorm:"foreignKey:ClearanceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ClearanceModel) TableName() string {
	return "clearances"
}

// ClearanceTaskModel is one task of an employee clearance
type ClearanceTaskModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key"`
	ClearanceID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Text        string               `gorm:"type:varchar(200);not null"`
	Status      clearance.TaskStatus `gorm:"type:varchar(20);not null"`
	CompletedAt *time.Time
	Position    int `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClearanceTaskModel) TableName() string {
	return "clearance_tasks"
}

// ToDomain converts the model to a domain Clearance. Tasks must be preloaded
// in position order.
func (m *ClearanceModel) ToDomain() *clearance.Clearance {
	tasks := make([]clearance.Task, len(m.Tasks))
	for i, t := range m.Tasks {
		tasks[i] = clearance.Task{ID: t.ID, Text: t.Text, Status: t.Status, CompletedAt: t.CompletedAt}
	}
	return &clearance.Clearance{
		BaseAggregateRoot: m.aggregate(),
		EmployeeID:        m.EmployeeID,
		DepartmentID:      m.DepartmentID,
		TemplateID:        m.TemplateID,
		Status:            m.Status,
		Tasks:             tasks,
		StartedAt:         m.StartedAt,
		CompletedAt:       m.CompletedAt,
	}
}

// ClearanceModelFromDomain creates a model from a domain Clearance
func ClearanceModelFromDomain(c *clearance.Clearance) *ClearanceModel {
	m := &ClearanceModel{
		EmployeeID:   c.EmployeeID,
		DepartmentID: c.DepartmentID,
		TemplateID:   c.TemplateID,
		Status:       c.Status,
		StartedAt:    c.StartedAt,
		CompletedAt:  c.CompletedAt,
		Tasks:        make([]ClearanceTaskModel, len(c.Tasks)),
	}
	m.setAggregate(c.BaseAggregateRoot)
	for i, t := range c.Tasks {
		m.Tasks[i] = ClearanceTaskModel{
			ID:          t.ID,
			ClearanceID: c.ID,
			Text:        t.Text,
			Status:      t.Status,
			CompletedAt: t.CompletedAt,
			Position:    i,
		}
	}
	return m
}
