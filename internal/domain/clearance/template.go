package clearance

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// TemplateTask is an ordered task of a department checklist template
type TemplateTask struct {
	ID       uuid.UUID
	Text     string
	Position int
}

// ChecklistTemplate is the clearance task list defined for one department
type ChecklistTemplate struct {
	shared.BaseAggregateRoot
	DepartmentID uuid.UUID
	Tasks        []TemplateTask
}

// NewChecklistTemplate creates an empty template for a department
func NewChecklistTemplate(departmentID uuid.UUID) (*ChecklistTemplate, error) {
	if departmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEPARTMENT", "department is required")
	}
	return &ChecklistTemplate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DepartmentID:      departmentID,
		Tasks:             make([]TemplateTask, 0),
	}, nil
}

// ReplaceTasks validates tasks and stores them in the given order.
// On error the template is left untouched.
func (t *ChecklistTemplate) ReplaceTasks(tasks []Task, limits Limits) error {
	valid, err := ValidateTasks(tasks, limits)
	if err != nil {
		return err
	}

	next := make([]TemplateTask, len(valid))
	for i, task := range valid {
		id := task.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		next[i] = TemplateTask{ID: id, Text: task.Text, Position: i}
	}

	t.Tasks = next
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	t.AddDomainEvent(NewTemplateSavedEvent(t))
	return nil
}

// Texts returns the task texts in order
func (t *ChecklistTemplate) Texts() []string {
	texts := make([]string, len(t.Tasks))
	for i, task := range t.Tasks {
		texts[i] = task.Text
	}
	return texts
}

// WorkingTasks returns the template tasks as editable pending tasks
func (t *ChecklistTemplate) WorkingTasks() []Task {
	tasks := make([]Task, len(t.Tasks))
	for i, task := range t.Tasks {
		tasks[i] = Task{ID: task.ID, Text: task.Text, Status: TaskStatusPending}
	}
	return tasks
}
