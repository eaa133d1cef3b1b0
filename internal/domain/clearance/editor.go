package clearance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// TemplateStore persists department checklist templates for the editor
type TemplateStore interface {
	// FindByDepartment returns shared.ErrNotFound when the department has no template
	FindByDepartment(ctx context.Context, departmentID uuid.UUID) (*ChecklistTemplate, error)
	Save(ctx context.Context, template *ChecklistTemplate) error
}

// Resolution is the choice made when leaving a department with unsaved edits
type Resolution string

const (
	ResolutionNone    Resolution = ""
	ResolutionSave    Resolution = "save"
	ResolutionDiscard Resolution = "discard"
	ResolutionStay    Resolution = "stay"
)

// IsValid reports whether r is a known resolution
func (r Resolution) IsValid() bool {
	switch r {
	case ResolutionNone, ResolutionSave, ResolutionDiscard, ResolutionStay:
		return true
	}
	return false
}

var (
	ErrUnsavedChanges = shared.NewDomainError("UNSAVED_CHANGES", "checklist has unsaved changes")
	ErrInvalidIndex   = shared.NewDomainError("INVALID_INDEX", "task index out of range")
	ErrTaskNotFound   = shared.NewDomainError("TASK_NOT_FOUND", "task not found")
	ErrNoDepartment   = shared.NewDomainError("NO_DEPARTMENT", "no department is loaded")
)

// EditorState is the serializable form of an Editor
type EditorState struct {
	DepartmentID uuid.UUID `json:"department_id"`
	Tasks        []Task    `json:"tasks"`
	Saved        []string  `json:"saved"`
}

// Editor holds the working task list of one department template and the
// snapshot it was last loaded or saved with.
type Editor struct {
	store        TemplateStore
	limits       Limits
	departmentID uuid.UUID
	tasks        []Task
	saved        []string
}

// NewEditor creates an editor with no department loaded
func NewEditor(store TemplateStore, limits Limits) *Editor {
	return &Editor{
		store:  store,
		limits: limits.normalized(),
		tasks:  make([]Task, 0),
		saved:  make([]string, 0),
	}
}

// RestoreEditor rebuilds an editor from a persisted state
func RestoreEditor(store TemplateStore, limits Limits, state EditorState) *Editor {
	e := NewEditor(store, limits)
	e.departmentID = state.DepartmentID
	e.tasks = append(e.tasks, state.Tasks...)
	e.saved = append(e.saved, state.Saved...)
	return e
}

// State returns a copy of the editor state
func (e *Editor) State() EditorState {
	return EditorState{
		DepartmentID: e.departmentID,
		Tasks:        e.Tasks(),
		Saved:        append([]string(nil), e.saved...),
	}
}

// DepartmentID returns the loaded department, or uuid.Nil
func (e *Editor) DepartmentID() uuid.UUID {
	return e.departmentID
}

// Tasks returns a copy of the working tasks in order
func (e *Editor) Tasks() []Task {
	out := make([]Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

// Load replaces the working list and the snapshot with the department's
// template. A department without a template loads as empty.
func (e *Editor) Load(ctx context.Context, departmentID uuid.UUID) error {
	if departmentID == uuid.Nil {
		return ErrNoDepartment
	}

	tasks := make([]Task, 0)
	saved := make([]string, 0)

	tmpl, err := e.store.FindByDepartment(ctx, departmentID)
	switch {
	case err == nil:
		tasks = tmpl.WorkingTasks()
		saved = tmpl.Texts()
	case errors.Is(err, shared.ErrNotFound):
	default:
		return err
	}

	e.departmentID = departmentID
	e.tasks = tasks
	e.saved = saved
	return nil
}

// AddTask appends a task and returns it
func (e *Editor) AddTask(text string) Task {
	task := NewTask(text)
	e.tasks = append(e.tasks, task)
	return task
}

// UpdateTask changes the text of a task
func (e *Editor) UpdateTask(id uuid.UUID, text string) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	e.tasks[i].Text = text
	return nil
}

// RemoveTask deletes a task
func (e *Editor) RemoveTask(id uuid.UUID) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	return nil
}

// Move takes the task at from out of the list and inserts it at to.
// to is the drop target's current position.
func (e *Editor) Move(from, to int) error {
	n := len(e.tasks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrInvalidIndex
	}
	if from == to {
		return nil
	}

	moved := e.tasks[from]
	rest := make([]Task, 0, n)
	rest = append(rest, e.tasks[:from]...)
	rest = append(rest, e.tasks[from+1:]...)

	out := make([]Task, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	e.tasks = out
	return nil
}

// IsDirty reports whether the trimmed, non-empty task texts differ from the
// last saved snapshot
func (e *Editor) IsDirty() bool {
	return !equalTexts(MeaningfulTexts(e.tasks), e.saved)
}

// Save validates and persists the working list as the department template.
// On failure neither the working list nor the snapshot changes.
func (e *Editor) Save(ctx context.Context) (*ChecklistTemplate, error) {
	if e.departmentID == uuid.Nil {
		return nil, ErrNoDepartment
	}

	valid, err := ValidateTasks(e.tasks, e.limits)
	if err != nil {
		return nil, err
	}

	tmpl, err := e.store.FindByDepartment(ctx, e.departmentID)
	if errors.Is(err, shared.ErrNotFound) {
		tmpl, err = NewChecklistTemplate(e.departmentID)
	}
	if err != nil {
		return nil, err
	}

	if err := tmpl.ReplaceTasks(valid, e.limits); err != nil {
		return nil, err
	}
	if err := e.store.Save(ctx, tmpl); err != nil {
		return nil, err
	}

	e.tasks = tmpl.WorkingTasks()
	e.saved = tmpl.Texts()
	return tmpl, nil
}

// Discard drops unsaved edits by reloading the snapshot of the current department
func (e *Editor) Discard(ctx context.Context) error {
	if e.departmentID == uuid.Nil {
		return ErrNoDepartment
	}
	return e.Load(ctx, e.departmentID)
}

// SwitchDepartment moves the editor to another department. With unsaved
// edits the caller must pass a resolution; ResolutionNone yields
// ErrUnsavedChanges. It reports whether the switch happened.
func (e *Editor) SwitchDepartment(ctx context.Context, departmentID uuid.UUID, resolution Resolution) (bool, error) {
	if !resolution.IsValid() {
		return false, shared.NewDomainError("INVALID_RESOLUTION", "resolution must be save, discard or stay")
	}
	if departmentID == e.departmentID {
		return true, nil
	}

	if e.departmentID != uuid.Nil && e.IsDirty() {
		switch resolution {
		case ResolutionNone:
			return false, ErrUnsavedChanges
		case ResolutionStay:
			return false, nil
		case ResolutionSave:
			if _, err := e.Save(ctx); err != nil {
				return false, err
			}
		case ResolutionDiscard:
		}
	}

	if err := e.Load(ctx, departmentID); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Editor) indexOf(id uuid.UUID) int {
	for i, t := range e.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
