package clearance

import (
	"fmt"

	"github.com/realtyadmin/backend/internal/domain/shared"
)

const (
	AggregateTypeTemplate  = "ChecklistTemplate"
	AggregateTypeClearance = "Clearance"
)

const (
	EventTypeTemplateSaved          = "ChecklistTemplateSaved"
	EventTypeClearanceStarted       = "ClearanceStarted"
	EventTypeClearanceTaskCompleted = "ClearanceTaskCompleted"
	EventTypeClearanceCompleted     = "ClearanceCompleted"
	EventTypeClearanceCancelled     = "ClearanceCancelled"
)

// TemplateSavedEvent is raised when a department template is saved
type TemplateSavedEvent struct {
	shared.BaseDomainEvent
	DepartmentID string   `json:"department_id"`
	Tasks        []string `json:"tasks"`
}

func NewTemplateSavedEvent(t *ChecklistTemplate) *TemplateSavedEvent {
	return &TemplateSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTemplateSaved, AggregateTypeTemplate, t.ID),
		DepartmentID:    t.DepartmentID.String(),
		Tasks:           t.Texts(),
	}
}

func (e *TemplateSavedEvent) Describe() string {
	return fmt.Sprintf("Saved clearance checklist template with %d tasks", len(e.Tasks))
}

// ClearanceStartedEvent is raised when an employee clearance starts
type ClearanceStartedEvent struct {
	shared.BaseDomainEvent
	EmployeeID string `json:"employee_id"`
	TaskCount  int    `json:"task_count"`
}

func NewClearanceStartedEvent(c *Clearance) *ClearanceStartedEvent {
	return &ClearanceStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClearanceStarted, AggregateTypeClearance, c.ID),
		EmployeeID:      c.EmployeeID.String(),
		TaskCount:       len(c.Tasks),
	}
}

func (e *ClearanceStartedEvent) Describe() string {
	return fmt.Sprintf("Started clearance with %d tasks", e.TaskCount)
}

// ClearanceTaskCompletedEvent is raised when a clearance task is done
type ClearanceTaskCompletedEvent struct {
	shared.BaseDomainEvent
	TaskID string `json:"task_id"`
	Task   string `json:"task"`
}

func NewClearanceTaskCompletedEvent(c *Clearance, t Task) *ClearanceTaskCompletedEvent {
	return &ClearanceTaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClearanceTaskCompleted, AggregateTypeClearance, c.ID),
		TaskID:          t.ID.String(),
		Task:            t.Text,
	}
}

func (e *ClearanceTaskCompletedEvent) Describe() string {
	return fmt.Sprintf("Completed clearance task %q", e.Task)
}

// ClearanceCompletedEvent is raised when every task of a clearance is done
type ClearanceCompletedEvent struct {
	shared.BaseDomainEvent
	EmployeeID string `json:"employee_id"`
}

func NewClearanceCompletedEvent(c *Clearance) *ClearanceCompletedEvent {
	return &ClearanceCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClearanceCompleted, AggregateTypeClearance, c.ID),
		EmployeeID:      c.EmployeeID.String(),
	}
}

func (e *ClearanceCompletedEvent) Describe() string {
	return "Clearance completed"
}

// ClearanceCancelledEvent is raised when a clearance is cancelled
type ClearanceCancelledEvent struct {
	shared.BaseDomainEvent
	EmployeeID string `json:"employee_id"`
}

func NewClearanceCancelledEvent(c *Clearance) *ClearanceCancelledEvent {
	return &ClearanceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClearanceCancelled, AggregateTypeClearance, c.ID),
		EmployeeID:      c.EmployeeID.String(),
	}
}

func (e *ClearanceCancelledEvent) Describe() string {
	return "Clearance cancelled"
}
