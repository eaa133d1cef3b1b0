package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	funds    *FundReferenceService
	vouchers *VoucherService
	ledger   *LedgerService
	owner    *property.Owner
}

func newFixture(t *testing.T, publisher shared.EventPublisher) fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	fundRepo := persistence.NewGormFundReferenceRepository(db)
	seriesRepo := persistence.NewGormVoucherSeriesRepository(db)
	ledgerRepo := persistence.NewGormLedgerRepository(db)
	ownerRepo := persistence.NewGormOwnerRepository(db)
	logger := zap.NewNop()

	owner, err := property.NewOwner("CLIENT-1", property.OwnerDetails{Name: "Ledger Client"})
	require.NoError(t, err)
	require.NoError(t, ownerRepo.Save(context.Background(), owner))

	return fixture{
		db:       db,
		funds:    NewFundReferenceService(fundRepo, ledgerRepo, publisher, logger),
		vouchers: NewVoucherService(seriesRepo, publisher, nil, logger),
		ledger:   NewLedgerService(ledgerRepo, fundRepo, ownerRepo, publisher, nil, logger),
		owner:    owner,
	}
}

func TestFundReferenceService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testutil.ActorContext("super_accountant")

	fund, err := f.funds.Create(ctx, FundReferenceInput{Code: "gen-fund", Name: "General Fund"})
	require.NoError(t, err)
	assert.Equal(t, "GEN-FUND", fund.Code)

	_, err = f.funds.Create(ctx, FundReferenceInput{Code: "GEN-FUND", Name: "Duplicate"})
	testutil.RequireDomainError(t, err, "FUND_REFERENCE_CODE_EXISTS")

	t.Run("inactive funds reject postings", func(t *testing.T) {
		_, err := f.funds.SetActive(ctx, fund.ID, false)
		require.NoError(t, err)

		_, err = f.ledger.Post(ctx, PostEntryInput{
			AccountType:     "client",
			AccountID:       f.owner.ID,
			Credit:          decimal.NewFromInt(500),
			FundReferenceID: &fund.ID,
		})
		testutil.RequireDomainError(t, err, "FUND_REFERENCE_INACTIVE")

		_, err = f.funds.SetActive(ctx, fund.ID, true)
		require.NoError(t, err)
	})

	t.Run("referenced funds cannot be deleted", func(t *testing.T) {
		_, err := f.ledger.Post(ctx, PostEntryInput{
			AccountType:     "client",
			AccountID:       f.owner.ID,
			Credit:          decimal.NewFromInt(500),
			FundReferenceID: &fund.ID,
		})
		require.NoError(t, err)

		err = f.funds.Delete(ctx, fund.ID)
		testutil.RequireDomainError(t, err, "FUND_REFERENCE_IN_USE")
	})

	t.Run("unused funds are deleted", func(t *testing.T) {
		spare, err := f.funds.Create(ctx, FundReferenceInput{Code: "SPARE", Name: "Spare Fund"})
		require.NoError(t, err)
		require.NoError(t, f.funds.Delete(ctx, spare.ID))

		_, err = f.funds.GetByID(ctx, spare.ID)
		testutil.RequireDomainError(t, err, "FUND_REFERENCE_NOT_FOUND")
	})

	t.Run("search", func(t *testing.T) {
		page, err := f.funds.List(ctx, ListInput{Search: "general"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "GEN-FUND", page.Items[0].Code)
	})
}

func TestVoucherService_IssueNext(t *testing.T) {
	pub := testutil.NewPublisher()
	f := newFixture(t, pub)
	ctx := testutil.ActorContext("accounting")

	series, err := f.vouchers.Create(ctx, CreateVoucherSeriesInput{Prefix: "or", StartNumber: 1, EndNumber: 2, PadWidth: 4})
	require.NoError(t, err)
	assert.Equal(t, "OR", series.Prefix)
	assert.Equal(t, int64(2), series.Remaining)

	first, err := f.vouchers.IssueNext(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, "OR-0001", first.Number)

	second, err := f.vouchers.IssueNext(ctx, series.ID)
	require.NoError(t, err)
	assert.Equal(t, "OR-0002", second.Number)
	assert.Equal(t, "exhausted", second.Series.Status)

	_, err = f.vouchers.IssueNext(ctx, series.ID)
	testutil.RequireDomainError(t, err, "SERIES_EXHAUSTED")

	t.Run("extending reactivates the series", func(t *testing.T) {
		_, err := f.vouchers.Update(ctx, series.ID, UpdateVoucherSeriesInput{EndNumber: 1})
		testutil.RequireDomainError(t, err, "INVALID_RANGE")

		updated, err := f.vouchers.Update(ctx, series.ID, UpdateVoucherSeriesInput{Description: "Official receipts", EndNumber: 5})
		require.NoError(t, err)
		assert.Equal(t, "active", updated.Status)

		third, err := f.vouchers.IssueNext(ctx, series.ID)
		require.NoError(t, err)
		assert.Equal(t, "OR-0003", third.Number)
	})

	t.Run("issued series cannot be deleted", func(t *testing.T) {
		err := f.vouchers.Delete(ctx, series.ID)
		testutil.RequireDomainError(t, err, "VOUCHER_SERIES_IN_USE")
	})

	assert.Contains(t, pub.Types(), finance.EventTypeVoucherIssued)
}

func TestVoucherService_StaleVersionConflicts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testutil.ActorContext("accounting")
	repo := persistence.NewGormVoucherSeriesRepository(f.db)

	created, err := f.vouchers.Create(ctx, CreateVoucherSeriesInput{Prefix: "CV", StartNumber: 10, EndNumber: 99})
	require.NoError(t, err)

	stale, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	expected := stale.Version

	_, err = f.vouchers.IssueNext(ctx, created.ID)
	require.NoError(t, err)

	_, err = stale.IssueNext()
	require.NoError(t, err)
	err = repo.SaveWithVersion(ctx, stale, expected)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	current, err := f.vouchers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), current.NextNumber)
}

func TestLedgerService_Post(t *testing.T) {
	pub := testutil.NewPublisher()
	f := newFixture(t, pub)
	ctx := testutil.ActorContext("super_accountant")
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	post := func(at time.Time, debit, credit int64) *LedgerEntryDTO {
		t.Helper()
		e, err := f.ledger.Post(ctx, PostEntryInput{
			AccountType:     "client",
			AccountID:       f.owner.ID,
			TransactionDate: at,
			Debit:           decimal.NewFromInt(debit),
			Credit:          decimal.NewFromInt(credit),
		})
		require.NoError(t, err)
		return e
	}

	post(base, 0, 100)
	post(base.Add(time.Hour), 0, 50)
	last := post(base.Add(2*time.Hour), 30, 0)
	assert.True(t, decimal.NewFromInt(120).Equal(last.RunningBalance))
	assert.Regexp(t, `^TX-20260301-[0-9a-f]{8}$`, last.TransactionID)
	require.NotNil(t, last.PostedBy)
	assert.Equal(t, testutil.TestUserID(), *last.PostedBy)

	t.Run("backdated entries are rejected", func(t *testing.T) {
		_, err := f.ledger.Post(ctx, PostEntryInput{
			AccountType:     "client",
			AccountID:       f.owner.ID,
			TransactionDate: base.Add(-time.Hour),
			Credit:          decimal.NewFromInt(1),
		})
		testutil.RequireDomainError(t, err, "BACKDATED_ENTRY")
	})

	t.Run("both sides set is invalid", func(t *testing.T) {
		_, err := f.ledger.Post(ctx, PostEntryInput{
			AccountType: "client",
			AccountID:   f.owner.ID,
			Debit:       decimal.NewFromInt(1),
			Credit:      decimal.NewFromInt(1),
		})
		testutil.RequireDomainError(t, err, "INVALID_AMOUNT")
	})

	t.Run("supplied transaction ids are unique", func(t *testing.T) {
		in := PostEntryInput{
			TransactionID:   "TX-MANUAL-1",
			AccountType:     "client",
			AccountID:       f.owner.ID,
			TransactionDate: base.Add(3 * time.Hour),
			Credit:          decimal.NewFromInt(10),
		}
		_, err := f.ledger.Post(ctx, in)
		require.NoError(t, err)

		in.TransactionDate = base.Add(4 * time.Hour)
		_, err = f.ledger.Post(ctx, in)
		testutil.RequireDomainError(t, err, "TRANSACTION_EXISTS")
	})

	t.Run("unknown client account", func(t *testing.T) {
		_, err := f.ledger.Post(ctx, PostEntryInput{AccountType: "client", AccountID: uuid.New(), Credit: decimal.NewFromInt(1)})
		testutil.RequireDomainError(t, err, "OWNER_NOT_FOUND")
	})

	assert.Contains(t, pub.Types(), finance.EventTypeLedgerEntryPosted)
}

func TestLedgerService_View(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testutil.ActorContext("super_accountant")
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, amount := range []struct{ debit, credit int64 }{{0, 100}, {0, 50}, {30, 0}} {
		_, err := f.ledger.Post(ctx, PostEntryInput{
			AccountType:     "client",
			AccountID:       f.owner.ID,
			TransactionDate: base.Add(time.Duration(i) * time.Hour),
			Description:     "entry",
			Debit:           decimal.NewFromInt(amount.debit),
			Credit:          decimal.NewFromInt(amount.credit),
		})
		require.NoError(t, err)
	}

	balances := func(view *finance.LedgerView) []string {
		out := make([]string, len(view.Rows))
		for i, r := range view.Rows {
			out[i] = r.RunningBalance.String()
		}
		return out
	}

	oldest, err := f.ledger.View(ctx, ViewInput{AccountType: "client", AccountID: f.owner.ID, Order: "oldest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "150", "120"}, balances(oldest))
	assert.Equal(t, "120", oldest.EndingBalance.String())

	newest, err := f.ledger.View(ctx, ViewInput{AccountType: "client", AccountID: f.owner.ID, Order: "newest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"120", "150", "100"}, balances(newest))
	assert.Equal(t, "120", newest.EndingBalance.String())

	empty, err := f.ledger.View(ctx, ViewInput{AccountType: "system", AccountID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
	assert.True(t, empty.EndingBalance.IsZero())

	from, to := base.Add(2*time.Hour), base
	_, err = f.ledger.View(ctx, ViewInput{AccountType: "client", AccountID: f.owner.ID, From: &from, To: &to})
	testutil.RequireDomainError(t, err, "INVALID_PERIOD")
}

func TestLedgerService_SystemAccount(t *testing.T) {
	f := newFixture(t, nil)
	ctx := testutil.ActorContext("super_accountant")

	fund, err := f.funds.Create(ctx, FundReferenceInput{Code: "TRUST", Name: "Trust Fund"})
	require.NoError(t, err)

	entry, err := f.ledger.Post(ctx, PostEntryInput{AccountType: "system", AccountID: fund.ID, Credit: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	require.NotNil(t, entry.FundReferenceID)
	assert.Equal(t, fund.ID, *entry.FundReferenceID)

	other := uuid.New()
	_, err = f.ledger.Post(ctx, PostEntryInput{AccountType: "system", AccountID: fund.ID, FundReferenceID: &other, Credit: decimal.NewFromInt(1)})
	testutil.RequireDomainError(t, err, "INVALID_ACCOUNT")

	_, err = f.ledger.Post(ctx, PostEntryInput{AccountType: "system", AccountID: uuid.New(), Credit: decimal.NewFromInt(1)})
	testutil.RequireDomainError(t, err, "FUND_REFERENCE_NOT_FOUND")
}
