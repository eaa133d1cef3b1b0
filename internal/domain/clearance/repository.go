package clearance

import (
	"context"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// TemplateRepository persists checklist templates
type TemplateRepository interface {
	TemplateStore
	FindByID(ctx context.Context, id uuid.UUID) (*ChecklistTemplate, error)
	FindAll(ctx context.Context) ([]ChecklistTemplate, error)
	DeleteByDepartment(ctx context.Context, departmentID uuid.UUID) error
}

// ClearanceRepository persists employee clearances
type ClearanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Clearance, error)
	// FindAll supports Filters "status", "employee_id" and "department_id"
	FindAll(ctx context.Context, filter shared.Filter) ([]Clearance, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	FindOpenByDepartment(ctx context.Context, departmentID uuid.UUID) ([]Clearance, error)
	FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*Clearance, error)
	Save(ctx context.Context, c *Clearance) error
}

// DraftStore keeps editor states between requests
type DraftStore interface {
	Get(ctx context.Context, draftID string) (*EditorState, error)
	Put(ctx context.Context, draftID string, state EditorState) error
	Delete(ctx context.Context, draftID string) error
}
