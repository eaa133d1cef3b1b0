package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// FundReferenceRepository persists fund references
type FundReferenceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FundReference, error)
	FindByCode(ctx context.Context, code string) (*FundReference, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]FundReference, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, f *FundReference) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoucherSeriesRepository persists voucher series
type VoucherSeriesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VoucherSeries, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]VoucherSeries, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByPrefix(ctx context.Context, prefix string) (bool, error)
	Save(ctx context.Context, s *VoucherSeries) error
	// SaveWithVersion updates s only if the stored version still equals
	// expectedVersion and returns shared.ErrConcurrencyConflict otherwise
	SaveWithVersion(ctx context.Context, s *VoucherSeries, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LedgerQuery selects entries of one account
type LedgerQuery struct {
	AccountType AccountType
	AccountID   uuid.UUID
	From        *time.Time
	To          *time.Time
	Search      string
	Limit       int
}

// LedgerRepository persists ledger entries
type LedgerRepository interface {
	// Latest returns the most recent entry of the account, or shared.ErrNotFound
	Latest(ctx context.Context, accountType AccountType, accountID uuid.UUID) (*LedgerEntry, error)
	Find(ctx context.Context, q LedgerQuery) ([]LedgerEntry, error)
	ExistsByTransactionID(ctx context.Context, txID string) (bool, error)
	Create(ctx context.Context, e *LedgerEntry) error
	// WithinTransaction runs fn with a repository bound to one DB transaction
	WithinTransaction(ctx context.Context, fn func(repo LedgerRepository) error) error
	CountByFundReference(ctx context.Context, fundReferenceID uuid.UUID) (int64, error)
}
