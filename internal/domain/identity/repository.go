package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// UserRepository persists users.
// FindAll accepts the "role" and "status" filters.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, u *User) error
}
