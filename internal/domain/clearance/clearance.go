package clearance

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// Status is the state of an employee clearance
type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Clearance is the checklist an employee works through before leaving.
// Its tasks are copied from the department template when it starts.
type Clearance struct {
	shared.BaseAggregateRoot
	EmployeeID   uuid.UUID
	DepartmentID uuid.UUID
	TemplateID   uuid.UUID
	Status       Status
	Tasks        []Task
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// NewClearance starts a clearance for an employee from a department template
func NewClearance(employeeID uuid.UUID, tmpl *ChecklistTemplate) (*Clearance, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "employee is required")
	}
	if tmpl == nil || len(tmpl.Tasks) == 0 {
		return nil, shared.NewDomainError(CodeChecklistEmpty, "department has no checklist tasks")
	}

	tasks := make([]Task, len(tmpl.Tasks))
	for i, t := range tmpl.Tasks {
		tasks[i] = NewTask(t.Text)
	}

	c := &Clearance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		DepartmentID:      tmpl.DepartmentID,
		TemplateID:        tmpl.ID,
		Status:            StatusOpen,
		Tasks:             tasks,
		StartedAt:         time.Now(),
	}
	c.AddDomainEvent(NewClearanceStartedEvent(c))
	return c, nil
}

// IsOpen reports whether tasks can still change
func (c *Clearance) IsOpen() bool {
	return c.Status == StatusOpen
}

// Progress returns the number of completed tasks and the total
func (c *Clearance) Progress() (done, total int) {
	for _, t := range c.Tasks {
		if t.IsCompleted() {
			done++
		}
	}
	return done, len(c.Tasks)
}

// CompleteTask marks a task done at the given time. The clearance completes
// when every task is done.
func (c *Clearance) CompleteTask(taskID uuid.UUID, at time.Time) error {
	if !c.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "clearance is not open")
	}
	i := c.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	if c.Tasks[i].IsCompleted() {
		return nil
	}

	completedAt := at
	c.Tasks[i].Status = TaskStatusCompleted
	c.Tasks[i].CompletedAt = &completedAt
	c.touch()
	c.AddDomainEvent(NewClearanceTaskCompletedEvent(c, c.Tasks[i]))

	if done, total := c.Progress(); done == total {
		c.Status = StatusCompleted
		c.CompletedAt = &completedAt
		c.AddDomainEvent(NewClearanceCompletedEvent(c))
	}
	return nil
}

// ReopenTask moves a completed task back to pending
func (c *Clearance) ReopenTask(taskID uuid.UUID) error {
	if !c.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "clearance is not open")
	}
	i := c.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	c.Tasks[i].Status = TaskStatusPending
	c.Tasks[i].CompletedAt = nil
	c.touch()
	return nil
}

// Cancel closes an open clearance without completing it
func (c *Clearance) Cancel() error {
	if !c.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "only open clearances can be cancelled")
	}
	c.Status = StatusCancelled
	c.touch()
	c.AddDomainEvent(NewClearanceCancelledEvent(c))
	return nil
}

// MergeTemplate brings an open clearance in line with a newly saved template.
// Tasks matching a template task by normalized text keep their progress, new
// template tasks are added as pending, pending tasks no longer in the template
// are dropped and completed ones are kept after the template tasks.
func (c *Clearance) MergeTemplate(tmpl *ChecklistTemplate) bool {
	if !c.IsOpen() || tmpl == nil || tmpl.DepartmentID != c.DepartmentID {
		return false
	}

	existing := make(map[string]Task, len(c.Tasks))
	for _, t := range c.Tasks {
		existing[NormalizeText(t.Text)] = t
	}

	merged := make([]Task, 0, len(tmpl.Tasks))
	used := make(map[string]struct{}, len(tmpl.Tasks))
	for _, tt := range tmpl.Tasks {
		key := NormalizeText(tt.Text)
		used[key] = struct{}{}
		if t, ok := existing[key]; ok {
			t.Text = tt.Text
			merged = append(merged, t)
			continue
		}
		merged = append(merged, NewTask(tt.Text))
	}
	for _, t := range c.Tasks {
		if _, ok := used[NormalizeText(t.Text)]; ok {
			continue
		}
		if t.IsCompleted() {
			merged = append(merged, t)
		}
	}

	c.Tasks = merged
	c.TemplateID = tmpl.ID
	c.touch()

	if done, total := c.Progress(); total > 0 && done == total {
		now := time.Now()
		c.Status = StatusCompleted
		c.CompletedAt = &now
		c.AddDomainEvent(NewClearanceCompletedEvent(c))
	}
	return true
}

func (c *Clearance) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func (c *Clearance) indexOf(id uuid.UUID) int {
	for i, t := range c.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
