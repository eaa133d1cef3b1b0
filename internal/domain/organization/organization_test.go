package organization

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDepartment(t *testing.T, code, name string) *Department {
	t.Helper()
	d, err := NewDepartment(code, name, "")
	require.NoError(t, err)
	return d
}

func TestNewDepartment(t *testing.T) {
	t.Run("creates a root department", func(t *testing.T) {
		d, err := NewDepartment("acct", "Accounting", " books ")
		require.NoError(t, err)
		assert.Equal(t, "ACCT", d.Code)
		assert.Equal(t, "books", d.Description)
		assert.Equal(t, "/"+d.ID.String(), d.Path)
		assert.True(t, d.IsRoot())
		assert.Equal(t, DepartmentStatusActive, d.Status)
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewDepartment("123CODE", "Name", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start with a letter")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewDepartment("CODE", " ", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestDepartment_MoveUnder(t *testing.T) {
	root := mustDepartment(t, "ROOT", "Head Office")
	child := mustDepartment(t, "HR", "Human Resources")
	grandchild := mustDepartment(t, "PAY", "Payroll")

	require.NoError(t, child.MoveUnder(root))
	require.NoError(t, grandchild.MoveUnder(child))
	assert.Equal(t, 2, grandchild.Level)
	assert.Equal(t, []uuid.UUID{root.ID, child.ID}, grandchild.AncestorIDs())

	t.Run("rejects self", func(t *testing.T) {
		assert.True(t, errors.Is(child.MoveUnder(child), ErrCircularReference))
	})

	t.Run("rejects descendant", func(t *testing.T) {
		err := root.MoveUnder(grandchild)
		assert.True(t, errors.Is(err, ErrCircularReference))
		assert.True(t, root.IsRoot())
	})

	t.Run("rebase descendants", func(t *testing.T) {
		other := mustDepartment(t, "OPS", "Operations")
		oldPath, oldLevel := child.Path, child.Level
		require.NoError(t, child.MoveUnder(other))
		grandchild.Rebase(oldPath, child.Path, child.Level-oldLevel)
		assert.Equal(t, other.Path+"/"+child.ID.String()+"/"+grandchild.ID.String(), grandchild.Path)
		assert.Equal(t, 2, grandchild.Level)
	})

	t.Run("back to root", func(t *testing.T) {
		require.NoError(t, child.MoveUnder(nil))
		assert.Equal(t, 0, child.Level)
		assert.Nil(t, child.ParentID)
	})
}

func TestPosition_ReportTo(t *testing.T) {
	dept := uuid.New()
	ceo, err := NewPosition("CEO", "Chief Executive", dept, 0)
	require.NoError(t, err)
	mgr, err := NewPosition("MGR", "Manager", dept, 1)
	require.NoError(t, err)
	clerk, err := NewPosition("CLERK", "Clerk", dept, 2)
	require.NoError(t, err)

	chain := map[uuid.UUID]*uuid.UUID{}
	require.NoError(t, mgr.ReportTo(&ceo.ID, chain))
	chain[mgr.ID] = mgr.ReportsToID
	require.NoError(t, clerk.ReportTo(&mgr.ID, chain))
	chain[clerk.ID] = clerk.ReportsToID

	assert.True(t, errors.Is(ceo.ReportTo(&clerk.ID, chain), ErrCircularReference))
	assert.True(t, errors.Is(ceo.ReportTo(&ceo.ID, chain), ErrCircularReference))
	assert.Nil(t, ceo.ReportsToID)

	require.NoError(t, clerk.ReportTo(nil, chain))
	assert.Nil(t, clerk.ReportsToID)
}

func TestBuildHierarchy(t *testing.T) {
	root := mustDepartment(t, "ROOT", "Head Office")
	b := mustDepartment(t, "BBB", "Bravo")
	a := mustDepartment(t, "AAA", "Alpha")
	z := mustDepartment(t, "ZZZ", "Zulu")
	require.NoError(t, b.MoveUnder(root))
	require.NoError(t, a.MoveUnder(root))
	require.NoError(t, z.MoveUnder(root))
	z.SetSortOrder(-1)

	pos, err := NewPosition("LEAD", "Lead", a.ID, 0)
	require.NoError(t, err)

	tree := BuildHierarchy([]Department{*b, *root, *a, *z}, []Position{*pos})
	require.Len(t, tree, 1)
	children := tree[0].Children
	require.Len(t, children, 3)
	assert.Equal(t, "Zulu", children[0].Department.Name)
	assert.Equal(t, "Alpha", children[1].Department.Name)
	assert.Equal(t, "Bravo", children[2].Department.Name)
	require.Len(t, children[1].Positions, 1)
	assert.Equal(t, "LEAD", children[1].Positions[0].Code)
}

func TestReorder(t *testing.T) {
	a := mustDepartment(t, "AAA", "Alpha")
	b := mustDepartment(t, "BBB", "Bravo")
	c := mustDepartment(t, "CCC", "Charlie")
	siblings := []*Department{a, b, c}

	require.NoError(t, Reorder(siblings, []uuid.UUID{c.ID, a.ID, b.ID}))
	assert.Equal(t, 0, c.SortOrder)
	assert.Equal(t, 1, a.SortOrder)
	assert.Equal(t, 2, b.SortOrder)

	assert.Error(t, Reorder(siblings, []uuid.UUID{a.ID, a.ID, b.ID}))
	assert.Error(t, Reorder(siblings, []uuid.UUID{a.ID, b.ID}))
	assert.Error(t, Reorder(siblings, []uuid.UUID{a.ID, b.ID, uuid.New()}))
}
