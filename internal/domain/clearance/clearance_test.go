package clearance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTemplate(t *testing.T, departmentID uuid.UUID, texts ...string) *ChecklistTemplate {
	t.Helper()
	tmpl, err := NewChecklistTemplate(departmentID)
	require.NoError(t, err)
	tasks := make([]Task, len(texts))
	for i, text := range texts {
		tasks[i] = NewTask(text)
	}
	require.NoError(t, tmpl.ReplaceTasks(tasks, DefaultLimits()))
	return tmpl
}

func TestNewClearance(t *testing.T) {
	dept := uuid.New()

	t.Run("copies template tasks as pending", func(t *testing.T) {
		tmpl := newTemplate(t, dept, "Return ID", "Turn over laptop")
		c, err := NewClearance(uuid.New(), tmpl)
		require.NoError(t, err)
		assert.Equal(t, StatusOpen, c.Status)
		assert.Equal(t, []string{"Return ID", "Turn over laptop"}, texts(c.Tasks))
		for _, task := range c.Tasks {
			assert.Equal(t, TaskStatusPending, task.Status)
		}
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("fails for empty template", func(t *testing.T) {
		tmpl, _ := NewChecklistTemplate(dept)
		_, err := NewClearance(uuid.New(), tmpl)
		require.Error(t, err)
	})
}

func TestClearance_CompleteTask(t *testing.T) {
	tmpl := newTemplate(t, uuid.New(), "Return ID", "Turn over laptop")
	c, err := NewClearance(uuid.New(), tmpl)
	require.NoError(t, err)
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.CompleteTask(c.Tasks[0].ID, at))
	assert.Equal(t, TaskStatusCompleted, c.Tasks[0].Status)
	require.NotNil(t, c.Tasks[0].CompletedAt)
	assert.Equal(t, at, *c.Tasks[0].CompletedAt)
	assert.Equal(t, StatusOpen, c.Status)

	require.NoError(t, c.CompleteTask(c.Tasks[1].ID, at))
	assert.Equal(t, StatusCompleted, c.Status)
	assert.Error(t, c.ReopenTask(c.Tasks[0].ID))

	assert.ErrorIs(t, (&Clearance{Status: StatusOpen}).CompleteTask(uuid.New(), at), ErrTaskNotFound)
}

func TestClearance_MergeTemplate(t *testing.T) {
	dept := uuid.New()
	tmpl := newTemplate(t, dept, "Return ID", "Turn over laptop", "Sign exit form")
	c, err := NewClearance(uuid.New(), tmpl)
	require.NoError(t, err)
	at := time.Now()
	require.NoError(t, c.CompleteTask(c.Tasks[0].ID, at))
	require.NoError(t, c.CompleteTask(c.Tasks[2].ID, at))

	updated := newTemplate(t, dept, "Clear locker", "return id")
	require.True(t, c.MergeTemplate(updated))

	assert.Equal(t, []string{"Clear locker", "return id", "Sign exit form"}, texts(c.Tasks))
	assert.Equal(t, TaskStatusPending, c.Tasks[0].Status)
	assert.Equal(t, TaskStatusCompleted, c.Tasks[1].Status)
	assert.Equal(t, TaskStatusCompleted, c.Tasks[2].Status)
	assert.Equal(t, StatusOpen, c.Status)

	t.Run("ignores other departments", func(t *testing.T) {
		assert.False(t, c.MergeTemplate(newTemplate(t, uuid.New(), "Other task")))
	})
}

func TestClearance_Cancel(t *testing.T) {
	c, err := NewClearance(uuid.New(), newTemplate(t, uuid.New(), "Return ID"))
	require.NoError(t, err)
	require.NoError(t, c.Cancel())
	assert.Equal(t, StatusCancelled, c.Status)
	assert.Error(t, c.Cancel())
}
