package organization

import (
	"sort"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// Node is a department with its positions and child departments
type Node struct {
	Department *Department
	Positions  []*Position
	Children   []*Node
}

// BuildHierarchy assembles the department forest. Siblings are ordered by
// SortOrder, then name. Departments whose parent is missing become roots.
func BuildHierarchy(departments []Department, positions []Position) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(departments))
	for i := range departments {
		nodes[departments[i].ID] = &Node{Department: &departments[i]}
	}
	for i := range positions {
		if n, ok := nodes[positions[i].DepartmentID]; ok {
			n.Positions = append(n.Positions, &positions[i])
		}
	}

	roots := make([]*Node, 0)
	for i := range departments {
		d := &departments[i]
		n := nodes[d.ID]
		if d.ParentID != nil {
			if parent, ok := nodes[*d.ParentID]; ok && parent != n {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Department, nodes[j].Department
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})
	for _, n := range nodes {
		sort.SliceStable(n.Positions, func(i, j int) bool {
			a, b := n.Positions[i], n.Positions[j]
			if a.Level != b.Level {
				return a.Level < b.Level
			}
			return a.Title < b.Title
		})
		sortNodes(n.Children)
	}
}

// Reorder assigns SortOrder to siblings in the order of orderedIDs.
// orderedIDs must be exactly the ids of siblings.
func Reorder(siblings []*Department, orderedIDs []uuid.UUID) error {
	if len(siblings) != len(orderedIDs) {
		return shared.NewDomainError("INVALID_ORDER", "the order must list every sibling exactly once")
	}
	byID := make(map[uuid.UUID]*Department, len(siblings))
	for _, d := range siblings {
		byID[d.ID] = d
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := byID[id]; !ok || seen[id] {
			return shared.NewDomainError("INVALID_ORDER", "the order must list every sibling exactly once")
		}
		seen[id] = true
	}
	for i, id := range orderedIDs {
		byID[id].SetSortOrder(i)
	}
	return nil
}
