package clearance

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
)

// DraftDTO is the editor state returned by every draft operation
type DraftDTO struct {
	ID           string           `json:"id"`
	DepartmentID uuid.UUID        `json:"department_id"`
	Tasks        []clearance.Task `json:"tasks"`
	Dirty        bool             `json:"dirty"`
}

func toDraftDTO(id string, e *clearance.Editor) DraftDTO {
	return DraftDTO{
		ID:           id,
		DepartmentID: e.DepartmentID(),
		Tasks:        e.Tasks(),
		Dirty:        e.IsDirty(),
	}
}

// SwitchResult reports the outcome of a department switch
type SwitchResult struct {
	Switched bool     `json:"switched"`
	Draft    DraftDTO `json:"draft"`
}

// TemplateTaskDTO is an ordered task of a template
type TemplateTaskDTO struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Position int       `json:"position"`
}

// TemplateDTO represents a department checklist template
type TemplateDTO struct {
	ID           uuid.UUID         `json:"id"`
	DepartmentID uuid.UUID         `json:"department_id"`
	Tasks        []TemplateTaskDTO `json:"tasks"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Version      int               `json:"version"`
}

// ToTemplateDTO converts a domain template
func ToTemplateDTO(t *clearance.ChecklistTemplate) TemplateDTO {
	tasks := make([]TemplateTaskDTO, len(t.Tasks))
	for i, task := range t.Tasks {
		tasks[i] = TemplateTaskDTO{ID: task.ID, Text: task.Text, Position: task.Position}
	}
	return TemplateDTO{
		ID:           t.ID,
		DepartmentID: t.DepartmentID,
		Tasks:        tasks,
		UpdatedAt:    t.UpdatedAt,
		Version:      t.Version,
	}
}

// ListInput filters the clearance list
type ListInput struct {
	Status       string
	EmployeeID   string
	DepartmentID string
	Page         int
	PageSize     int
	OrderBy      string
	OrderDir     string
}

// ClearanceDTO represents an employee clearance
type ClearanceDTO struct {
	ID           uuid.UUID        `json:"id"`
	EmployeeID   uuid.UUID        `json:"employee_id"`
	DepartmentID uuid.UUID        `json:"department_id"`
	TemplateID   uuid.UUID        `json:"template_id"`
	Status       string           `json:"status"`
	Tasks        []clearance.Task `json:"tasks"`
	Done         int              `json:"done"`
	Total        int              `json:"total"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	Version      int              `json:"version"`
}

// ToClearanceDTO converts a domain clearance
func ToClearanceDTO(c *clearance.Clearance) ClearanceDTO {
	done, total := c.Progress()
	return ClearanceDTO{
		ID:           c.ID,
		EmployeeID:   c.EmployeeID,
		DepartmentID: c.DepartmentID,
		TemplateID:   c.TemplateID,
		Status:       string(c.Status),
		Tasks:        append([]clearance.Task(nil), c.Tasks...),
		Done:         done,
		Total:        total,
		StartedAt:    c.StartedAt,
		CompletedAt:  c.CompletedAt,
		Version:      c.Version,
	}
}
