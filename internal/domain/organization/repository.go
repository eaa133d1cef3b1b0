package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// DepartmentRepository persists departments
type DepartmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Department, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Department, error)
	// FindAllOrdered returns every department ordered by level, sort order and name
	FindAllOrdered(ctx context.Context) ([]Department, error)
	// FindChildren returns the direct children of parentID, or roots when nil
	FindChildren(ctx context.Context, parentID *uuid.UUID) ([]Department, error)
	// FindDescendants returns every department below the given path
	FindDescendants(ctx context.Context, path string) ([]Department, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, d *Department) error
	SaveBatch(ctx context.Context, departments []*Department) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PositionRepository persists positions.
// FindAll accepts the "department_id" filter.
type PositionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Position, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Position, error)
	FindAllUnpaged(ctx context.Context) ([]Position, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	CountReports(ctx context.Context, positionID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, p *Position) error
	Delete(ctx context.Context, id uuid.UUID) error
}
