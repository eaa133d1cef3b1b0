package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFundReferenceRepository implements finance.FundReferenceRepository using GORM
type GormFundReferenceRepository struct {
	db *gorm.DB
}

// NewGormFundReferenceRepository creates a new GormFundReferenceRepository
func NewGormFundReferenceRepository(db *gorm.DB) *GormFundReferenceRepository {
	return &GormFundReferenceRepository{db: db}
}

// FindByID finds a fund reference by ID
func (r *GormFundReferenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FundReference, error) {
	var model models.FundReferenceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a fund reference by code
func (r *GormFundReferenceRepository) FindByCode(ctx context.Context, code string) (*finance.FundReference, error) {
	var model models.FundReferenceModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", strings.ToUpper(code)).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of fund references
func (r *GormFundReferenceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FundReference, error) {
	var ms []models.FundReferenceModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.FundReferenceModel{}), filter)
	query = applyPaging(query, filter, fundReferenceSort, "code ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]finance.FundReference, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts fund references matching the filter
func (r *GormFundReferenceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.FundReferenceModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByCode checks whether the code is taken
func (r *GormFundReferenceRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.FundReferenceModel{}).Where("code = ?", strings.ToUpper(code)))
}

// Save creates or updates a fund reference
func (r *GormFundReferenceRepository) Save(ctx context.Context, f *finance.FundReference) error {
	return r.db.WithContext(ctx).Save(models.FundReferenceModelFromDomain(f)).Error
}

// Delete removes a fund reference
func (r *GormFundReferenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.FundReferenceModel{}, "id = ?", id))
}

func (r *GormFundReferenceRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name", "description")
	if v, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", v)
	}
	return query
}

// GormVoucherSeriesRepository implements finance.VoucherSeriesRepository using GORM
type GormVoucherSeriesRepository struct {
	db *gorm.DB
}

// NewGormVoucherSeriesRepository creates a new GormVoucherSeriesRepository
func NewGormVoucherSeriesRepository(db *gorm.DB) *GormVoucherSeriesRepository {
	return &GormVoucherSeriesRepository{db: db}
}

// FindByID finds a voucher series by ID
func (r *GormVoucherSeriesRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.VoucherSeries, error) {
	var model models.VoucherSeriesModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of voucher series
func (r *GormVoucherSeriesRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.VoucherSeries, error) {
	var ms []models.VoucherSeriesModel
	query := r.filtered(r.db.WithContext(ctx).Model(&models.VoucherSeriesModel{}), filter)
	query = applyPaging(query, filter, voucherSeriesSort, "prefix ASC")
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]finance.VoucherSeries, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts voucher series matching the filter
func (r *GormVoucherSeriesRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.VoucherSeriesModel{}), filter).Count(&count).Error
	return count, err
}

// ExistsByPrefix checks whether the prefix is taken
func (r *GormVoucherSeriesRepository) ExistsByPrefix(ctx context.Context, prefix string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.VoucherSeriesModel{}).Where("prefix = ?", strings.ToUpper(prefix)))
}

// Save creates or updates a voucher series without a version check
func (r *GormVoucherSeriesRepository) Save(ctx context.Context, s *finance.VoucherSeries) error {
	return r.db.WithContext(ctx).Save(models.VoucherSeriesModelFromDomain(s)).Error
}

// SaveWithVersion updates the series with optimistic locking
func (r *GormVoucherSeriesRepository) SaveWithVersion(ctx context.Context, s *finance.VoucherSeries, expectedVersion int) error {
	model := models.VoucherSeriesModelFromDomain(s)
	result := r.db.WithContext(ctx).
		Model(&models.VoucherSeriesModel{}).
		Where("id = ? AND version = ?", s.ID, expectedVersion).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a voucher series
func (r *GormVoucherSeriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.VoucherSeriesModel{}, "id = ?", id))
}

func (r *GormVoucherSeriesRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "prefix", "description")
	if v, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", v)
	}
	return query
}

// GormLedgerRepository implements finance.LedgerRepository using GORM
type GormLedgerRepository struct {
	db   *gorm.DB
	inTx bool
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Latest returns the most recent entry of an account by (transaction_date,
// transaction_id), the order views display. Inside a postgres
// transaction it first takes an advisory lock on the account so concurrent
// postings serialize on the running balance.
func (r *GormLedgerRepository) Latest(ctx context.Context, accountType finance.AccountType, accountID uuid.UUID) (*finance.LedgerEntry, error) {
	db := r.db.WithContext(ctx)
	if r.inTx && db.Dialector.Name() == "postgres" {
		key := string(accountType) + ":" + accountID.String()
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return nil, err
		}
	}

	var model models.LedgerEntryModel
	err := db.
		Where("account_type = ? AND account_id = ?", accountType, accountID).
		Order("transaction_date DESC, transaction_id DESC").
		First(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// Find returns the entries of one account in display order, the same
// (transaction_date, transaction_id) key Latest chains balances on
func (r *GormLedgerRepository) Find(ctx context.Context, q finance.LedgerQuery) ([]finance.LedgerEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("account_type = ? AND account_id = ?", q.AccountType, q.AccountID)
	if q.From != nil {
		query = query.Where("transaction_date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("transaction_date <= ?", *q.To)
	}
	query = applySearch(query, q.Search, "description", "transaction_id", "voucher_number")
	query = query.Order("transaction_date ASC, transaction_id ASC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var ms []models.LedgerEntryModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]finance.LedgerEntry, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// ExistsByTransactionID checks whether a transaction id was already posted
func (r *GormLedgerRepository) ExistsByTransactionID(ctx context.Context, txID string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).Where("transaction_id = ?", txID))
}

// Create inserts an entry; entries are never updated. transaction_id is the
// only unique column besides the primary key.
func (r *GormLedgerRepository) Create(ctx context.Context, e *finance.LedgerEntry) error {
	err := r.db.WithContext(ctx).Create(models.LedgerEntryModelFromDomain(e)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return finance.TransactionExistsError(e.TransactionID)
	}
	return err
}

// WithinTransaction runs fn against a repository bound to a single transaction
func (r *GormLedgerRepository) WithinTransaction(ctx context.Context, fn func(repo finance.LedgerRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormLedgerRepository{db: tx, inTx: true})
	})
}

// CountByFundReference counts entries charged to a fund
func (r *GormLedgerRepository) CountByFundReference(ctx context.Context, fundReferenceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("fund_reference_id = ?", fundReferenceID).
		Count(&count).Error
	return count, err
}

var (
	_ finance.FundReferenceRepository = (*GormFundReferenceRepository)(nil)
	_ finance.VoucherSeriesRepository = (*GormVoucherSeriesRepository)(nil)
	_ finance.LedgerRepository        = (*GormLedgerRepository)(nil)
)
