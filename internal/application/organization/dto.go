package organization

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/organization"
)

// ListInput carries the paging and search values of a list request
type ListInput struct {
	Search       string
	Status       string
	ParentID     string
	DepartmentID string
	Page         int
	PageSize     int
	OrderBy      string
	OrderDir     string
}

// CreateDepartmentInput contains the fields of a new department
type CreateDepartmentInput struct {
	Code        string
	Name        string
	Description string
	ParentID    *uuid.UUID
}

// UpdateDepartmentInput contains the editable fields of a department
type UpdateDepartmentInput struct {
	Name           string
	Description    string
	HeadEmployeeID *uuid.UUID
}

// DepartmentDTO represents a department in responses
type DepartmentDTO struct {
	ID             uuid.UUID  `json:"id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	Path           string     `json:"path"`
	Level          int        `json:"level"`
	SortOrder      int        `json:"sort_order"`
	HeadEmployeeID *uuid.UUID `json:"head_employee_id,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// ToDepartmentDTO converts a domain department
func ToDepartmentDTO(d *organization.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:             d.ID,
		Code:           d.Code,
		Name:           d.Name,
		Description:    d.Description,
		ParentID:       d.ParentID,
		Path:           d.Path,
		Level:          d.Level,
		SortOrder:      d.SortOrder,
		HeadEmployeeID: d.HeadEmployeeID,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Version:        d.Version,
	}
}

// PositionInput contains the fields of a position form
type PositionInput struct {
	Code         string
	Title        string
	DepartmentID uuid.UUID
	ReportsToID  *uuid.UUID
	Level        int
}

// PositionDTO represents a position in responses
type PositionDTO struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Title        string     `json:"title"`
	DepartmentID uuid.UUID  `json:"department_id"`
	ReportsToID  *uuid.UUID `json:"reports_to_id,omitempty"`
	Level        int        `json:"level"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Version      int        `json:"version"`
}

// ToPositionDTO converts a domain position
func ToPositionDTO(p *organization.Position) PositionDTO {
	return PositionDTO{
		ID:           p.ID,
		Code:         p.Code,
		Title:        p.Title,
		DepartmentID: p.DepartmentID,
		ReportsToID:  p.ReportsToID,
		Level:        p.Level,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// HierarchyNode is one department of the organization tree
type HierarchyNode struct {
	DepartmentDTO
	Positions []PositionDTO    `json:"positions"`
	Children  []*HierarchyNode `json:"children"`
}

func toHierarchy(nodes []*organization.Node) []*HierarchyNode {
	out := make([]*HierarchyNode, len(nodes))
	for i, n := range nodes {
		h := &HierarchyNode{
			DepartmentDTO: ToDepartmentDTO(n.Department),
			Positions:     make([]PositionDTO, len(n.Positions)),
			Children:      toHierarchy(n.Children),
		}
		for j, p := range n.Positions {
			h.Positions[j] = ToPositionDTO(p)
		}
		out[i] = h
	}
	return out
}
