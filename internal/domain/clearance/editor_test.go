package clearance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTemplateStore struct {
	templates map[uuid.UUID]*ChecklistTemplate
	saves     int
	saveErr   error
}

func newMemoryTemplateStore() *memoryTemplateStore {
	return &memoryTemplateStore{templates: make(map[uuid.UUID]*ChecklistTemplate)}
}

func (s *memoryTemplateStore) FindByDepartment(_ context.Context, departmentID uuid.UUID) (*ChecklistTemplate, error) {
	t, ok := s.templates[departmentID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *t
	cp.Tasks = append([]TemplateTask(nil), t.Tasks...)
	return &cp, nil
}

func (s *memoryTemplateStore) Save(_ context.Context, t *ChecklistTemplate) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	cp := *t
	cp.Tasks = append([]TemplateTask(nil), t.Tasks...)
	s.templates[t.DepartmentID] = &cp
	return nil
}

func (s *memoryTemplateStore) seed(t *testing.T, departmentID uuid.UUID, texts ...string) {
	t.Helper()
	tmpl, err := NewChecklistTemplate(departmentID)
	require.NoError(t, err)
	tasks := make([]Task, len(texts))
	for i, text := range texts {
		tasks[i] = NewTask(text)
	}
	require.NoError(t, tmpl.ReplaceTasks(tasks, DefaultLimits()))
	s.templates[departmentID] = tmpl
}

func texts(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func loadedEditor(t *testing.T, store *memoryTemplateStore, departmentID uuid.UUID) *Editor {
	t.Helper()
	e := NewEditor(store, DefaultLimits())
	require.NoError(t, e.Load(context.Background(), departmentID))
	return e
}

func TestEditor_Load(t *testing.T) {
	ctx := context.Background()
	store := newMemoryTemplateStore()
	dept := uuid.New()
	store.seed(t, dept, "Return ID", "Turn over laptop")

	t.Run("loads template tasks as clean state", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		assert.Equal(t, []string{"Return ID", "Turn over laptop"}, texts(e.Tasks()))
		assert.False(t, e.IsDirty())
		assert.Equal(t, dept, e.DepartmentID())
	})

	t.Run("department without template loads empty", func(t *testing.T) {
		e := NewEditor(store, DefaultLimits())
		require.NoError(t, e.Load(ctx, uuid.New()))
		assert.Empty(t, e.Tasks())
		assert.False(t, e.IsDirty())
	})

	t.Run("rejects nil department", func(t *testing.T) {
		e := NewEditor(store, DefaultLimits())
		assert.ErrorIs(t, e.Load(ctx, uuid.Nil), ErrNoDepartment)
	})
}

func TestEditor_IsDirty(t *testing.T) {
	store := newMemoryTemplateStore()
	dept := uuid.New()
	store.seed(t, dept, "Return ID")

	t.Run("adding a blank task keeps editor clean", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		e.AddTask("   ")
		assert.False(t, e.IsDirty())
	})

	t.Run("surrounding whitespace does not count as a change", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		require.NoError(t, e.UpdateTask(e.Tasks()[0].ID, "  Return ID  "))
		assert.False(t, e.IsDirty())
	})

	t.Run("text change makes editor dirty", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		require.NoError(t, e.UpdateTask(e.Tasks()[0].ID, "Return company ID"))
		assert.True(t, e.IsDirty())
	})

	t.Run("reverting an edit makes editor clean again", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		task := e.AddTask("Clear locker")
		assert.True(t, e.IsDirty())
		require.NoError(t, e.RemoveTask(task.ID))
		assert.False(t, e.IsDirty())
	})
}

func TestEditor_Move(t *testing.T) {
	store := newMemoryTemplateStore()
	dept := uuid.New()
	store.seed(t, dept, "A1", "B2", "C3", "D4")

	t.Run("moves item forward to drop target index", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		require.NoError(t, e.Move(0, 2))
		assert.Equal(t, []string{"B2", "C3", "A1", "D4"}, texts(e.Tasks()))
		assert.True(t, e.IsDirty())
	})

	t.Run("moves item backward to drop target index", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		require.NoError(t, e.Move(3, 1))
		assert.Equal(t, []string{"A1", "D4", "B2", "C3"}, texts(e.Tasks()))
	})

	t.Run("same index is a no-op", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		require.NoError(t, e.Move(1, 1))
		assert.False(t, e.IsDirty())
	})

	t.Run("out of range leaves state unchanged", func(t *testing.T) {
		e := loadedEditor(t, store, dept)
		assert.ErrorIs(t, e.Move(0, 4), ErrInvalidIndex)
		assert.ErrorIs(t, e.Move(-1, 0), ErrInvalidIndex)
		assert.Equal(t, []string{"A1", "B2", "C3", "D4"}, texts(e.Tasks()))
	})
}

func TestEditor_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("zero non-empty tasks fails and leaves state unchanged", func(t *testing.T) {
		store := newMemoryTemplateStore()
		dept := uuid.New()
		store.seed(t, dept, "Return ID")
		e := loadedEditor(t, store, dept)
		require.NoError(t, e.RemoveTask(e.Tasks()[0].ID))
		e.AddTask("  ")
		before := e.State()

		_, err := e.Save(ctx)
		require.Error(t, err)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, CodeChecklistEmpty, de.Code)
		assert.Equal(t, before, e.State())
		assert.Equal(t, 0, store.saves)
	})

	t.Run("case-insensitive duplicates fail naming the task", func(t *testing.T) {
		store := newMemoryTemplateStore()
		e := loadedEditor(t, store, uuid.New())
		e.AddTask("Return ID")
		e.AddTask("Return ID")

		_, err := e.Save(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate task "Return ID"`)
		assert.True(t, e.IsDirty())

		e2 := loadedEditor(t, store, uuid.New())
		e2.AddTask("Return ID")
		e2.AddTask("  return id ")
		_, err = e2.Save(ctx)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, CodeDuplicateTask, de.Code)
	})

	t.Run("task outside length range fails", func(t *testing.T) {
		store := newMemoryTemplateStore()
		e := loadedEditor(t, store, uuid.New())
		e.AddTask("X")
		_, err := e.Save(ctx)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, CodeTaskLength, de.Code)
	})

	t.Run("successful save replaces snapshot and drops blank rows", func(t *testing.T) {
		store := newMemoryTemplateStore()
		dept := uuid.New()
		e := loadedEditor(t, store, dept)
		e.AddTask(" Return ID ")
		e.AddTask("")
		e.AddTask("Sign exit interview")
		require.True(t, e.IsDirty())

		tmpl, err := e.Save(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Return ID", "Sign exit interview"}, tmpl.Texts())
		assert.Equal(t, []string{"Return ID", "Sign exit interview"}, texts(e.Tasks()))
		assert.False(t, e.IsDirty())
		assert.Equal(t, 1, store.saves)

		stored, err := store.FindByDepartment(ctx, dept)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Tasks[1].Position)
	})

	t.Run("store failure leaves snapshot unchanged", func(t *testing.T) {
		store := newMemoryTemplateStore()
		e := loadedEditor(t, store, uuid.New())
		e.AddTask("Return ID")
		store.saveErr = errors.New("db down")

		_, err := e.Save(ctx)
		require.Error(t, err)
		assert.True(t, e.IsDirty())
	})
}

func TestEditor_SwitchDepartment(t *testing.T) {
	ctx := context.Background()
	store := newMemoryTemplateStore()
	deptA, deptB := uuid.New(), uuid.New()
	store.seed(t, deptA, "Return ID")
	store.seed(t, deptB, "Return keys")

	t.Run("clean editor switches directly", func(t *testing.T) {
		e := loadedEditor(t, store, deptA)
		switched, err := e.SwitchDepartment(ctx, deptB, ResolutionNone)
		require.NoError(t, err)
		assert.True(t, switched)
		assert.Equal(t, []string{"Return keys"}, texts(e.Tasks()))
	})

	t.Run("dirty editor without resolution is intercepted", func(t *testing.T) {
		e := loadedEditor(t, store, deptA)
		e.AddTask("Clear locker")
		switched, err := e.SwitchDepartment(ctx, deptB, ResolutionNone)
		assert.ErrorIs(t, err, ErrUnsavedChanges)
		assert.False(t, switched)
		assert.Equal(t, deptA, e.DepartmentID())
		assert.True(t, e.IsDirty())
	})

	t.Run("stay keeps edits and department", func(t *testing.T) {
		e := loadedEditor(t, store, deptA)
		e.AddTask("Clear locker")
		switched, err := e.SwitchDepartment(ctx, deptB, ResolutionStay)
		require.NoError(t, err)
		assert.False(t, switched)
		assert.Equal(t, []string{"Return ID", "Clear locker"}, texts(e.Tasks()))
	})

	t.Run("discard drops edits and switches", func(t *testing.T) {
		e := loadedEditor(t, store, deptA)
		e.AddTask("Clear locker")
		switched, err := e.SwitchDepartment(ctx, deptB, ResolutionDiscard)
		require.NoError(t, err)
		assert.True(t, switched)
		stored, _ := store.FindByDepartment(ctx, deptA)
		assert.Equal(t, []string{"Return ID"}, stored.Texts())
	})

	t.Run("save persists edits then switches", func(t *testing.T) {
		s := newMemoryTemplateStore()
		s.seed(t, deptA, "Return ID")
		e := loadedEditor(t, s, deptA)
		e.AddTask("Clear locker")
		switched, err := e.SwitchDepartment(ctx, deptB, ResolutionSave)
		require.NoError(t, err)
		assert.True(t, switched)
		stored, _ := s.FindByDepartment(ctx, deptA)
		assert.Equal(t, []string{"Return ID", "Clear locker"}, stored.Texts())
	})

	t.Run("failed save keeps editor on current department", func(t *testing.T) {
		e := loadedEditor(t, store, deptA)
		e.AddTask("return id")
		switched, err := e.SwitchDepartment(ctx, deptB, ResolutionSave)
		require.Error(t, err)
		assert.False(t, switched)
		assert.Equal(t, deptA, e.DepartmentID())
	})

	t.Run("unknown resolution is rejected", func(t *testing.T) {
		e := loadedEditor(t, store, deptA)
		_, err := e.SwitchDepartment(ctx, deptB, Resolution("later"))
		require.Error(t, err)
	})
}

func TestRestoreEditor(t *testing.T) {
	store := newMemoryTemplateStore()
	dept := uuid.New()
	store.seed(t, dept, "Return ID")
	e := loadedEditor(t, store, dept)
	e.AddTask("Clear locker")

	restored := RestoreEditor(store, DefaultLimits(), e.State())
	assert.Equal(t, e.State(), restored.State())
	assert.True(t, restored.IsDirty())
}
