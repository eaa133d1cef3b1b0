package organization

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// DepartmentStatus represents the status of a department
type DepartmentStatus string

const (
	DepartmentStatusActive   DepartmentStatus = "active"
	DepartmentStatusInactive DepartmentStatus = "inactive"
)

var (
	departmentCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_-]*$`)

	ErrCircularReference = shared.NewDomainError("CIRCULAR_REFERENCE", "a node cannot be placed under itself or one of its descendants")
)

// Department is a node of the organizational tree
type Department struct {
	shared.BaseAggregateRoot
	Code           string
	Name           string
	Description    string
	ParentID       *uuid.UUID
	Path           string // materialized, e.g. "/root-id/parent-id/this-id"
	Level          int    // 0 for roots
	SortOrder      int
	HeadEmployeeID *uuid.UUID
	Status         DepartmentStatus
}

// NewDepartment creates a root department. Use MoveUnder to attach it to a parent.
func NewDepartment(code, name, description string) (*Department, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateDepartmentCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	d := &Department{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Description:       strings.TrimSpace(description),
		Status:            DepartmentStatusActive,
	}
	d.Path = "/" + d.ID.String()
	d.AddDomainEvent(NewDepartmentEvent(EventTypeDepartmentCreated, d))
	return d, nil
}

// Update changes the descriptive fields
func (d *Department) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	d.Name = name
	d.Description = strings.TrimSpace(description)
	d.touch()
	d.AddDomainEvent(NewDepartmentEvent(EventTypeDepartmentUpdated, d))
	return nil
}

// MoveUnder places the department under parent, or makes it a root when
// parent is nil. Moving under itself or a descendant fails.
func (d *Department) MoveUnder(parent *Department) error {
	if parent == nil {
		d.ParentID = nil
		d.Path = "/" + d.ID.String()
		d.Level = 0
	} else {
		if parent.ID == d.ID || d.IsAncestorOf(parent.Path) {
			return ErrCircularReference
		}
		id := parent.ID
		d.ParentID = &id
		d.Path = parent.Path + "/" + d.ID.String()
		d.Level = parent.Level + 1
	}
	d.touch()
	d.AddDomainEvent(NewDepartmentEvent(EventTypeDepartmentMoved, d))
	return nil
}

// Rebase rewrites the path of a descendant after one of its ancestors moved
// from oldPrefix to newPrefix
func (d *Department) Rebase(oldPrefix, newPrefix string, levelDelta int) {
	if !strings.HasPrefix(d.Path, oldPrefix+"/") {
		return
	}
	d.Path = newPrefix + strings.TrimPrefix(d.Path, oldPrefix)
	d.Level += levelDelta
	d.touch()
}

// SetHead assigns the department head, nil to clear
func (d *Department) SetHead(employeeID *uuid.UUID) {
	if employeeID != nil && *employeeID == uuid.Nil {
		employeeID = nil
	}
	d.HeadEmployeeID = employeeID
	d.touch()
	d.AddDomainEvent(NewDepartmentEvent(EventTypeDepartmentUpdated, d))
}

// SetSortOrder sets the display order among siblings
func (d *Department) SetSortOrder(order int) {
	if d.SortOrder == order {
		return
	}
	d.SortOrder = order
	d.touch()
}

// Activate activates the department
func (d *Department) Activate() error {
	if d.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "department is already active")
	}
	d.Status = DepartmentStatusActive
	d.touch()
	d.AddDomainEvent(NewDepartmentEvent(EventTypeDepartmentUpdated, d))
	return nil
}

// Deactivate deactivates the department
func (d *Department) Deactivate() error {
	if !d.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "department is already inactive")
	}
	d.Status = DepartmentStatusInactive
	d.touch()
	d.AddDomainEvent(NewDepartmentEvent(EventTypeDepartmentUpdated, d))
	return nil
}

// IsActive returns true if department is active
func (d *Department) IsActive() bool {
	return d.Status == DepartmentStatusActive
}

// IsRoot returns true if the department has no parent
func (d *Department) IsRoot() bool {
	return d.ParentID == nil
}

// IsAncestorOf compares materialized paths
func (d *Department) IsAncestorOf(otherPath string) bool {
	return strings.HasPrefix(otherPath, d.Path+"/")
}

// AncestorIDs extracts the ancestor ids from the path, root first
func (d *Department) AncestorIDs() []uuid.UUID {
	parts := strings.Split(strings.Trim(d.Path, "/"), "/")
	if len(parts) <= 1 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		if id, err := uuid.Parse(p); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (d *Department) touch() {
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

func validateDepartmentCode(code string) error {
	if len(code) < 2 {
		return shared.NewDomainError("INVALID_CODE", "department code must be at least 2 characters")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "department code cannot exceed 50 characters")
	}
	if !departmentCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "department code must start with a letter and contain only letters, numbers, underscores, and hyphens")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "name cannot exceed 200 characters")
	}
	return nil
}
