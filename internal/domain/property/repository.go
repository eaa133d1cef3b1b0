package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// OwnerRepository persists owners
type OwnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Owner, error)
	FindByCode(ctx context.Context, code string) (*Owner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Owner, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, o *Owner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyRepository persists properties.
// FindAll accepts the "owner_id", "type" and "status" filters.
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository persists units.
// FindAll accepts the "property_id" and "status" filters.
type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Unit, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context) (map[UnitStatus]int64, error)
	ExistsByNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (bool, error)
	Save(ctx context.Context, u *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
