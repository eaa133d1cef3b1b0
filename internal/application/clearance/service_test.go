package clearance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/hr"
	"github.com/realtyadmin/backend/internal/domain/organization"
	"github.com/realtyadmin/backend/internal/infrastructure/cache"
	"github.com/realtyadmin/backend/internal/infrastructure/event"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	drafts       *DraftService
	store        *faultyDraftStore
	clearances   *ClearanceService
	bus          *event.InMemoryEventBus
	employeeRepo hr.EmployeeRepository
	departments  organization.DepartmentRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	mem := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = mem.Close() })

	logger := zap.NewNop()
	bus := event.NewInMemoryEventBus(logger)
	templateRepo := persistence.NewGormTemplateRepository(db)
	clearanceRepo := persistence.NewGormClearanceRepository(db)
	departmentRepo := persistence.NewGormDepartmentRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)

	clearances := NewClearanceService(clearanceRepo, templateRepo, employeeRepo, bus, nil, logger)
	bus.Subscribe(NewEmployeeResignedHandler(clearances, logger))

	store := &faultyDraftStore{DraftStore: cache.NewDraftStore(mem, 2*time.Hour)}
	return fixture{
		drafts: NewDraftService(templateRepo, clearanceRepo, departmentRepo,
			store, clearance.DefaultLimits(), bus, nil, logger),
		store:        store,
		clearances:   clearances,
		bus:          bus,
		employeeRepo: employeeRepo,
		departments:  departmentRepo,
	}
}

func (f fixture) department(t *testing.T, code string) uuid.UUID {
	t.Helper()
	d, err := organization.NewDepartment(code, code+" department", "")
	require.NoError(t, err)
	require.NoError(t, f.departments.Save(context.Background(), d))
	return d.ID
}

func (f fixture) employee(t *testing.T, no string, departmentID *uuid.UUID) *hr.Employee {
	t.Helper()
	e, err := hr.NewEmployee(no, hr.EmployeeDetails{
		FirstName:    "Test",
		LastName:     no,
		DepartmentID: departmentID,
		HireDate:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	e.ClearDomainEvents()
	require.NoError(t, f.employeeRepo.Save(context.Background(), e))
	return e
}

// resign saves the resignation and publishes its events on the bus
func (f fixture) resign(t *testing.T, e *hr.Employee) {
	t.Helper()
	ctx := testutil.ActorContext("hr_admin")
	require.NoError(t, e.Resign(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.employeeRepo.Save(ctx, e))
	require.NoError(t, f.bus.Publish(ctx, e.GetDomainEvents()...))
	e.ClearDomainEvents()
}

var errStoreDown = errors.New("draft store unavailable")

// faultyDraftStore lets okPuts calls to Put through, then fails the next
// failPuts calls
type faultyDraftStore struct {
	clearance.DraftStore
	okPuts   int
	failPuts int
}

func (s *faultyDraftStore) Put(ctx context.Context, draftID string, state clearance.EditorState) error {
	switch {
	case s.okPuts > 0:
		s.okPuts--
	case s.failPuts > 0:
		s.failPuts--
		return errStoreDown
	}
	return s.DraftStore.Put(ctx, draftID, state)
}

func texts(tasks []clearance.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Text
	}
	return out
}

func TestDraftService_EditAndSave(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ActorContext("admin_head")
	sales := f.department(t, "SALES")

	_, err := f.drafts.Open(ctx, uuid.New())
	testutil.RequireDomainError(t, err, "DEPARTMENT_NOT_FOUND")

	draft, err := f.drafts.Open(ctx, sales)
	require.NoError(t, err)
	assert.Empty(t, draft.Tasks)
	assert.False(t, draft.Dirty)

	draft, err = f.drafts.AddTask(ctx, draft.ID, "   ")
	require.NoError(t, err)
	assert.False(t, draft.Dirty, "a blank task does not make the draft dirty")

	_, err = f.drafts.Save(ctx, draft.ID)
	testutil.RequireDomainError(t, err, clearance.CodeChecklistEmpty)

	_, err = f.drafts.AddTask(ctx, draft.ID, "Return ID")
	require.NoError(t, err)
	draft, err = f.drafts.AddTask(ctx, draft.ID, "Return laptop")
	require.NoError(t, err)
	assert.True(t, draft.Dirty)

	draft, err = f.drafts.Move(ctx, draft.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Return laptop", "   ", "Return ID"}, texts(draft.Tasks))

	_, err = f.drafts.Move(ctx, draft.ID, 0, 3)
	testutil.RequireDomainError(t, err, "INVALID_INDEX")

	t.Run("duplicate leaves the draft unchanged", func(t *testing.T) {
		dup, err := f.drafts.AddTask(ctx, draft.ID, " return id ")
		require.NoError(t, err)

		_, err = f.drafts.Save(ctx, draft.ID)
		testutil.RequireDomainError(t, err, clearance.CodeDuplicateTask)

		got, err := f.drafts.Get(ctx, draft.ID)
		require.NoError(t, err)
		assert.Len(t, got.Tasks, 4)
		assert.True(t, got.Dirty)

		_, err = f.drafts.RemoveTask(ctx, draft.ID, dup.Tasks[3].ID)
		require.NoError(t, err)
	})

	t.Run("save drops blank rows", func(t *testing.T) {
		saved, err := f.drafts.Save(ctx, draft.ID)
		require.NoError(t, err)
		assert.False(t, saved.Dirty)
		assert.Equal(t, []string{"Return laptop", "Return ID"}, texts(saved.Tasks))

		tmpl, err := f.drafts.Template(ctx, sales)
		require.NoError(t, err)
		require.Len(t, tmpl.Tasks, 2)
		assert.Equal(t, "Return laptop", tmpl.Tasks[0].Text)
		assert.Equal(t, 1, tmpl.Tasks[1].Position)
	})

	t.Run("close", func(t *testing.T) {
		require.NoError(t, f.drafts.Close(ctx, draft.ID))
		_, err := f.drafts.Get(ctx, draft.ID)
		testutil.RequireDomainError(t, err, "DRAFT_NOT_FOUND")
	})
}

func TestDraftService_SwitchDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ActorContext("admin_head")
	sales := f.department(t, "SALES")
	ops := f.department(t, "OPS")

	draft, err := f.drafts.Open(ctx, sales)
	require.NoError(t, err)
	draft, err = f.drafts.AddTask(ctx, draft.ID, "Hand over client files")
	require.NoError(t, err)

	_, err = f.drafts.SwitchDepartment(ctx, draft.ID, ops, clearance.ResolutionNone)
	testutil.RequireDomainError(t, err, "UNSAVED_CHANGES")

	res, err := f.drafts.SwitchDepartment(ctx, draft.ID, ops, clearance.ResolutionStay)
	require.NoError(t, err)
	assert.False(t, res.Switched)
	assert.Equal(t, sales, res.Draft.DepartmentID)
	assert.True(t, res.Draft.Dirty)

	res, err = f.drafts.SwitchDepartment(ctx, draft.ID, ops, clearance.ResolutionSave)
	require.NoError(t, err)
	assert.True(t, res.Switched)
	assert.Equal(t, ops, res.Draft.DepartmentID)
	assert.Empty(t, res.Draft.Tasks)

	_, err = f.drafts.Template(ctx, sales)
	require.NoError(t, err, "the save resolution persisted the sales template")

	_, err = f.drafts.AddTask(ctx, draft.ID, "Return keys")
	require.NoError(t, err)
	res, err = f.drafts.SwitchDepartment(ctx, draft.ID, sales, clearance.ResolutionDiscard)
	require.NoError(t, err)
	assert.True(t, res.Switched)
	assert.Equal(t, []string{"Hand over client files"}, texts(res.Draft.Tasks))

	_, err = f.drafts.Template(ctx, ops)
	testutil.RequireDomainError(t, err, "TEMPLATE_NOT_FOUND")
}

func TestDraftService_SaveCheckpointsDraft(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ActorContext("admin_head")
	sales := f.department(t, "SALES")

	draft, err := f.drafts.Open(ctx, sales)
	require.NoError(t, err)
	_, err = f.drafts.AddTask(ctx, draft.ID, "Return ID")
	require.NoError(t, err)

	t.Run("transient store error is retried", func(t *testing.T) {
		f.store.failPuts = 1
		saved, err := f.drafts.Save(ctx, draft.ID)
		require.NoError(t, err)
		assert.False(t, saved.Dirty)

		got, err := f.drafts.Get(ctx, draft.ID)
		require.NoError(t, err)
		assert.False(t, got.Dirty)
	})

	t.Run("store down after commit drops the draft", func(t *testing.T) {
		_, err := f.drafts.AddTask(ctx, draft.ID, "Return laptop")
		require.NoError(t, err)

		f.store.failPuts = checkpointAttempts
		_, err = f.drafts.Save(ctx, draft.ID)
		testutil.RequireDomainError(t, err, "DRAFT_OUT_OF_SYNC")

		tmpl, err := f.drafts.Template(ctx, sales)
		require.NoError(t, err)
		require.Len(t, tmpl.Tasks, 2)
		assert.Equal(t, "Return laptop", tmpl.Tasks[1].Text)

		_, err = f.drafts.Get(ctx, draft.ID)
		testutil.RequireDomainError(t, err, "DRAFT_NOT_FOUND")
	})
}

func TestDraftService_SwitchAfterSaveKeepsSavedState(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ActorContext("admin_head")
	sales := f.department(t, "SALES")
	ops := f.department(t, "OPS")

	draft, err := f.drafts.Open(ctx, sales)
	require.NoError(t, err)
	_, err = f.drafts.AddTask(ctx, draft.ID, "Hand over client files")
	require.NoError(t, err)

	// the checkpoint after the save goes through, storing the switch fails
	f.store.okPuts, f.store.failPuts = 1, 1
	_, err = f.drafts.SwitchDepartment(ctx, draft.ID, ops, clearance.ResolutionSave)
	require.ErrorIs(t, err, errStoreDown)

	got, err := f.drafts.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, sales, got.DepartmentID)
	assert.False(t, got.Dirty, "the committed save is reflected in the stored draft")
	assert.Equal(t, []string{"Hand over client files"}, texts(got.Tasks))

	res, err := f.drafts.SwitchDepartment(ctx, draft.ID, ops, clearance.ResolutionNone)
	require.NoError(t, err)
	assert.True(t, res.Switched)
}

func TestClearance_StartedOnResignation(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.ActorContext("admin_head")
	sales := f.department(t, "SALES")
	ops := f.department(t, "OPS")

	draft, err := f.drafts.Open(ctx, sales)
	require.NoError(t, err)
	for _, text := range []string{"Return laptop", "Return ID"} {
		_, err = f.drafts.AddTask(ctx, draft.ID, text)
		require.NoError(t, err)
	}
	_, err = f.drafts.Save(ctx, draft.ID)
	require.NoError(t, err)

	seller := f.employee(t, "EMP-100", &sales)
	operator := f.employee(t, "EMP-101", &ops)
	loner := f.employee(t, "EMP-102", nil)
	f.resign(t, seller)
	f.resign(t, operator)
	f.resign(t, loner)

	page, err := f.clearances.List(ctx, ListInput{Status: "open"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "only the department with a checklist gets a clearance")
	c := page.Items[0]
	assert.Equal(t, seller.ID, c.EmployeeID)
	assert.Equal(t, []string{"Return laptop", "Return ID"}, texts(c.Tasks))

	_, err = f.clearances.Start(ctx, seller.ID)
	testutil.RequireDomainError(t, err, "CLEARANCE_EXISTS")

	_, err = f.clearances.Start(ctx, operator.ID)
	testutil.RequireDomainError(t, err, "TEMPLATE_NOT_FOUND")

	t.Run("template changes merge into open clearances", func(t *testing.T) {
		doneAt := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		_, err := f.clearances.CompleteTask(ctx, c.ID, c.Tasks[0].ID, &doneAt)
		require.NoError(t, err)

		got, err := f.drafts.Get(ctx, draft.ID)
		require.NoError(t, err)
		_, err = f.drafts.RemoveTask(ctx, draft.ID, got.Tasks[1].ID)
		require.NoError(t, err)
		_, err = f.drafts.AddTask(ctx, draft.ID, "Exit interview")
		require.NoError(t, err)
		_, err = f.drafts.Save(ctx, draft.ID)
		require.NoError(t, err)

		merged, err := f.clearances.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Return laptop", "Exit interview"}, texts(merged.Tasks))
		assert.True(t, merged.Tasks[0].IsCompleted())
		require.NotNil(t, merged.Tasks[0].CompletedAt)
		assert.True(t, doneAt.Equal(*merged.Tasks[0].CompletedAt))
		assert.Equal(t, 1, merged.Done)
	})

	t.Run("completing every task completes the clearance", func(t *testing.T) {
		current, err := f.clearances.GetByID(ctx, c.ID)
		require.NoError(t, err)

		reopened, err := f.clearances.ReopenTask(ctx, c.ID, current.Tasks[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 0, reopened.Done)

		for _, task := range current.Tasks {
			_, err = f.clearances.CompleteTask(ctx, c.ID, task.ID, nil)
			require.NoError(t, err)
		}
		done, err := f.clearances.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, string(clearance.StatusCompleted), done.Status)
		require.NotNil(t, done.CompletedAt)

		open, err := f.clearances.CountOpen(ctx)
		require.NoError(t, err)
		assert.Zero(t, open)

		_, err = f.clearances.Cancel(ctx, c.ID)
		testutil.RequireDomainError(t, err, "INVALID_STATE")
	})
}
