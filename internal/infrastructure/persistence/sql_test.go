package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherSeriesRepository_SaveWithVersion(t *testing.T) {
	series, err := finance.NewVoucherSeries("CV", "Check vouchers", 1, 100, 6)
	require.NoError(t, err)

	t.Run("stale version", func(t *testing.T) {
		m := testutil.NewMockDB(t)
		m.Mock.ExpectExec(`UPDATE "voucher_series" SET .* WHERE .*id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewGormVoucherSeriesRepository(m.DB).SaveWithVersion(context.Background(), series, 3)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		m.ExpectationsWereMet(t)
	})

	t.Run("current version", func(t *testing.T) {
		m := testutil.NewMockDB(t)
		m.Mock.ExpectExec(`UPDATE "voucher_series" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewGormVoucherSeriesRepository(m.DB).SaveWithVersion(context.Background(), series, 1))
		m.ExpectationsWereMet(t)
	})

	t.Run("driver error", func(t *testing.T) {
		m := testutil.NewMockDB(t)
		boom := errors.New("connection reset")
		m.Mock.ExpectExec(`UPDATE "voucher_series"`).WillReturnError(boom)

		err := NewGormVoucherSeriesRepository(m.DB).SaveWithVersion(context.Background(), series, 1)
		assert.ErrorIs(t, err, boom)
	})
}

func TestLedgerRepository_LatestLocksAccountInTransaction(t *testing.T) {
	m := testutil.NewMockDB(t)
	accountID := uuid.New()

	m.Mock.ExpectBegin()
	m.Mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("client:" + accountID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.Mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE .*account_type = \$1 AND account_id = \$2.* ORDER BY transaction_date DESC, transaction_id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	m.Mock.ExpectCommit()

	repo := NewGormLedgerRepository(m.DB)
	err := repo.WithinTransaction(context.Background(), func(tx finance.LedgerRepository) error {
		_, err := tx.Latest(context.Background(), finance.AccountTypeClient, accountID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
	m.ExpectationsWereMet(t)
}

func TestLedgerRepository_LatestOutsideTransactionSkipsLock(t *testing.T) {
	m := testutil.NewMockDB(t)
	m.Mock.ExpectQuery(`SELECT \* FROM "ledger_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormLedgerRepository(m.DB).Latest(context.Background(), finance.AccountTypeSystem, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	m.ExpectationsWereMet(t)
}
