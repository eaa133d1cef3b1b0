package organization

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const (
	AggregateTypeDepartment = "Department"
	AggregateTypePosition   = "Position"
)

const (
	EventTypeDepartmentCreated    = "DepartmentCreated"
	EventTypeDepartmentUpdated    = "DepartmentUpdated"
	EventTypeDepartmentMoved      = "DepartmentMoved"
	EventTypeDepartmentDeleted    = "DepartmentDeleted"
	EventTypeDepartmentsReordered = "DepartmentsReordered"
	EventTypePositionCreated      = "PositionCreated"
	EventTypePositionUpdated      = "PositionUpdated"
	EventTypePositionDeleted      = "PositionDeleted"
)

// DepartmentEvent covers department changes
type DepartmentEvent struct {
	shared.BaseDomainEvent
	Code  string `json:"code"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewDepartmentEvent creates a department event of the given type
func NewDepartmentEvent(eventType string, d *Department) *DepartmentEvent {
	return &DepartmentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeDepartment, d.ID),
		Code:            d.Code,
		Name:            d.Name,
		Level:           d.Level,
	}
}

func (e *DepartmentEvent) Describe() string {
	switch e.Type {
	case EventTypeDepartmentCreated:
		return fmt.Sprintf("Created department %s (%s)", e.Code, e.Name)
	case EventTypeDepartmentMoved:
		return fmt.Sprintf("Moved department %s to level %d", e.Code, e.Level)
	case EventTypeDepartmentDeleted:
		return fmt.Sprintf("Deleted department %s (%s)", e.Code, e.Name)
	case EventTypeDepartmentsReordered:
		return fmt.Sprintf("Reordered departments under %s", e.Name)
	}
	return fmt.Sprintf("Updated department %s (%s)", e.Code, e.Name)
}

// PositionEvent covers position changes
type PositionEvent struct {
	shared.BaseDomainEvent
	Code  string `json:"code"`
	Title string `json:"title"`
}

// NewPositionEvent creates a position event of the given type
func NewPositionEvent(eventType string, p *Position) *PositionEvent {
	return &PositionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypePosition, p.ID),
		Code:            p.Code,
		Title:           p.Title,
	}
}

func (e *PositionEvent) Describe() string {
	switch e.Type {
	case EventTypePositionCreated:
		return fmt.Sprintf("Created position %s (%s)", e.Code, e.Title)
	case EventTypePositionDeleted:
		return fmt.Sprintf("Deleted position %s (%s)", e.Code, e.Title)
	}
	return fmt.Sprintf("Updated position %s (%s)", e.Code, e.Title)
}
