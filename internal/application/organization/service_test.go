package organization

import (
	"testing"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServices(t *testing.T) (*DepartmentService, *PositionService) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	departmentRepo := persistence.NewGormDepartmentRepository(db)
	positionRepo := persistence.NewGormPositionRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	logger := zap.NewNop()
	return NewDepartmentService(departmentRepo, positionRepo, employeeRepo, nil, logger),
		NewPositionService(positionRepo, departmentRepo, nil, logger)
}

func TestDepartmentService_Tree(t *testing.T) {
	departments, positions := newServices(t)
	ctx := testutil.ActorContext("admin_head")

	root, err := departments.Create(ctx, CreateDepartmentInput{Code: "HQ", Name: "Head Office"})
	require.NoError(t, err)
	sales, err := departments.Create(ctx, CreateDepartmentInput{Code: "SALES", Name: "Sales", ParentID: &root.ID})
	require.NoError(t, err)
	leasing, err := departments.Create(ctx, CreateDepartmentInput{Code: "LEASING", Name: "Leasing", ParentID: &sales.ID})
	require.NoError(t, err)
	finance, err := departments.Create(ctx, CreateDepartmentInput{Code: "FIN", Name: "Finance", ParentID: &root.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, leasing.Level)
	assert.Equal(t, "/"+root.ID.String()+"/"+sales.ID.String()+"/"+leasing.ID.String(), leasing.Path)
	assert.Equal(t, 1, finance.SortOrder)

	_, err = departments.Create(ctx, CreateDepartmentInput{Code: "HQ", Name: "Again"})
	testutil.RequireDomainError(t, err, "DEPARTMENT_CODE_EXISTS")

	t.Run("moving under a descendant is circular", func(t *testing.T) {
		_, err := departments.Move(ctx, sales.ID, &leasing.ID)
		testutil.RequireDomainError(t, err, "CIRCULAR_REFERENCE")

		_, err = departments.Move(ctx, sales.ID, &sales.ID)
		testutil.RequireDomainError(t, err, "CIRCULAR_REFERENCE")
	})

	t.Run("move rewrites descendant paths", func(t *testing.T) {
		moved, err := departments.Move(ctx, sales.ID, &finance.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, moved.Level)

		child, err := departments.GetByID(ctx, leasing.ID)
		require.NoError(t, err)
		assert.Equal(t, moved.Path+"/"+leasing.ID.String(), child.Path)
		assert.Equal(t, 3, child.Level)
	})

	t.Run("hierarchy carries positions", func(t *testing.T) {
		_, err := positions.Create(ctx, PositionInput{Code: "CFO", Title: "Chief Finance Officer", DepartmentID: finance.ID, Level: 1})
		require.NoError(t, err)

		tree, err := departments.Hierarchy(ctx)
		require.NoError(t, err)
		require.Len(t, tree, 1)
		assert.Equal(t, "HQ", tree[0].Code)
		require.Len(t, tree[0].Children, 1)
		fin := tree[0].Children[0]
		assert.Equal(t, "FIN", fin.Code)
		require.Len(t, fin.Positions, 1)
		assert.Equal(t, "CFO", fin.Positions[0].Code)
		require.Len(t, fin.Children, 1)
		assert.Equal(t, "SALES", fin.Children[0].Code)
	})

	t.Run("delete guards", func(t *testing.T) {
		err := departments.Delete(ctx, finance.ID)
		testutil.RequireDomainError(t, err, "DEPARTMENT_HAS_CHILDREN")

		require.NoError(t, departments.Delete(ctx, leasing.ID))
		_, err = departments.GetByID(ctx, leasing.ID)
		testutil.RequireDomainError(t, err, "DEPARTMENT_NOT_FOUND")
	})
}

func TestDepartmentService_Reorder(t *testing.T) {
	departments, _ := newServices(t)
	ctx := testutil.ActorContext("admin_head")

	a, err := departments.Create(ctx, CreateDepartmentInput{Code: "AA", Name: "Alpha"})
	require.NoError(t, err)
	b, err := departments.Create(ctx, CreateDepartmentInput{Code: "BB", Name: "Bravo"})
	require.NoError(t, err)
	c, err := departments.Create(ctx, CreateDepartmentInput{Code: "CC", Name: "Charlie"})
	require.NoError(t, err)

	_, err = departments.Reorder(ctx, nil, []uuid.UUID{c.ID, a.ID})
	testutil.RequireDomainError(t, err, "INVALID_ORDER")

	ordered, err := departments.Reorder(ctx, nil, []uuid.UUID{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, "CC", ordered[0].Code)

	tree, err := departments.Hierarchy(ctx)
	require.NoError(t, err)
	codes := make([]string, len(tree))
	for i, n := range tree {
		codes[i] = n.Code
	}
	assert.Equal(t, []string{"CC", "AA", "BB"}, codes)
}

func TestPositionService_ReportingChain(t *testing.T) {
	departments, positions := newServices(t)
	ctx := testutil.ActorContext("admin_head")

	dept, err := departments.Create(ctx, CreateDepartmentInput{Code: "OPS", Name: "Operations"})
	require.NoError(t, err)

	_, err = positions.Create(ctx, PositionInput{Code: "GHOST", Title: "Ghost", DepartmentID: uuid.New()})
	testutil.RequireDomainError(t, err, "DEPARTMENT_NOT_FOUND")

	head, err := positions.Create(ctx, PositionInput{Code: "HEAD", Title: "Operations Head", DepartmentID: dept.ID})
	require.NoError(t, err)
	lead, err := positions.Create(ctx, PositionInput{Code: "LEAD", Title: "Team Lead", DepartmentID: dept.ID, ReportsToID: &head.ID, Level: 1})
	require.NoError(t, err)
	staff, err := positions.Create(ctx, PositionInput{Code: "STAFF", Title: "Staff", DepartmentID: dept.ID, ReportsToID: &lead.ID, Level: 2})
	require.NoError(t, err)

	t.Run("a manager cannot report to a subordinate", func(t *testing.T) {
		_, err := positions.Update(ctx, head.ID, PositionInput{Title: "Operations Head", DepartmentID: dept.ID, ReportsToID: &staff.ID})
		testutil.RequireDomainError(t, err, "CIRCULAR_REFERENCE")
	})

	t.Run("positions with reports cannot be deleted", func(t *testing.T) {
		err := positions.Delete(ctx, lead.ID)
		testutil.RequireDomainError(t, err, "POSITION_HAS_REPORTS")

		require.NoError(t, positions.Delete(ctx, staff.ID))
		require.NoError(t, positions.Delete(ctx, lead.ID))
	})

	t.Run("departments with positions cannot be deleted", func(t *testing.T) {
		err := departments.Delete(ctx, dept.ID)
		testutil.RequireDomainError(t, err, "DEPARTMENT_HAS_POSITIONS")
	})

	t.Run("list filters by department", func(t *testing.T) {
		page, err := positions.List(ctx, ListInput{DepartmentID: dept.ID.String()})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "HEAD", page.Items[0].Code)
	})
}
