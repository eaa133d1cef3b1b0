package clearance

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

// TaskStatus is the completion state of a checklist task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Default task text bounds, counted in characters after trimming
const (
	DefaultMinTaskLength = 2
	DefaultMaxTaskLength = 200
)

// Validation error codes
const (
	CodeChecklistEmpty = "CHECKLIST_EMPTY"
	CodeTaskLength     = "TASK_LENGTH"
	CodeDuplicateTask  = "DUPLICATE_TASK"
)

// Task is a single entry of a checklist
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Text        string     `json:"text"`
	Status      TaskStatus `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a pending task
func NewTask(text string) Task {
	return Task{
		ID:     uuid.New(),
		Text:   text,
		Status: TaskStatusPending,
	}
}

// IsCompleted reports whether the task is done
func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Limits bounds the length of task text
type Limits struct {
	MinLength int
	MaxLength int
}

// DefaultLimits returns the default task text bounds
func DefaultLimits() Limits {
	return Limits{MinLength: DefaultMinTaskLength, MaxLength: DefaultMaxTaskLength}
}

func (l Limits) normalized() Limits {
	if l.MinLength < 1 {
		l.MinLength = DefaultMinTaskLength
	}
	if l.MaxLength < l.MinLength {
		l.MaxLength = DefaultMaxTaskLength
	}
	return l
}

// NormalizeText returns the comparison key for task text: trimmed and case folded.
// A Caser is stateful, so one is built per call.
func NormalizeText(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}

// MeaningfulTexts returns the trimmed, non-empty texts of tasks in order
func MeaningfulTexts(tasks []Task) []string {
	texts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if s := strings.TrimSpace(t.Text); s != "" {
			texts = append(texts, s)
		}
	}
	return texts
}

// ValidateTasks checks a task list before it is saved. Blank tasks are ignored.
// It returns the tasks that would be persisted, trimmed and in order.
func ValidateTasks(tasks []Task, limits Limits) ([]Task, error) {
	limits = limits.normalized()

	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		t.Text = text
		kept = append(kept, t)
	}

	if len(kept) == 0 {
		return nil, shared.NewDomainError(CodeChecklistEmpty, "checklist must contain at least one task")
	}

	seen := make(map[string]struct{}, len(kept))
	for _, t := range kept {
		n := utf8.RuneCountInString(t.Text)
		if n < limits.MinLength || n > limits.MaxLength {
			return nil, shared.NewDomainErrorf(CodeTaskLength,
				"task %q must be between %d and %d characters", t.Text, limits.MinLength, limits.MaxLength)
		}
		key := NormalizeText(t.Text)
		if _, dup := seen[key]; dup {
			return nil, shared.NewDomainErrorf(CodeDuplicateTask, "duplicate task %q", t.Text)
		}
		seen[key] = struct{}{}
	}

	return kept, nil
}

func equalTexts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
