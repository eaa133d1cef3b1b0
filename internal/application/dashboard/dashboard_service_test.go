package dashboard

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/realtyadmin/backend/internal/domain/finance"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/cache"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboard(t *testing.T) (*DashboardService, Repositories) {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	mem := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = mem.Close() })

	repos := Repositories{
		Owners:        persistence.NewGormOwnerRepository(db),
		Properties:    persistence.NewGormPropertyRepository(db),
		Units:         persistence.NewGormUnitRepository(db),
		VoucherSeries: persistence.NewGormVoucherSeriesRepository(db),
		Leaves:        persistence.NewGormLeaveRepository(db),
		Tardiness:     persistence.NewGormTardinessRepository(db),
		Clearances:    persistence.NewGormClearanceRepository(db),
	}
	return NewDashboardService(repos, cache.NewWidgetStore(mem), nil, zap.NewNop()), repos
}

func TestDashboardService_SummaryByRole(t *testing.T) {
	svc, repos := newDashboard(t)
	ctx := context.Background()

	owner, err := property.NewOwner("OWN-1", property.OwnerDetails{Name: "Dela Cruz Holdings"})
	require.NoError(t, err)
	require.NoError(t, repos.Owners.Save(ctx, owner))

	series, err := finance.NewVoucherSeries("CV", "Cash vouchers", 1, 100, 0)
	require.NoError(t, err)
	require.NoError(t, repos.VoucherSeries.Save(ctx, series))

	t.Run("accounting", func(t *testing.T) {
		s, err := svc.Summary(ctx, identity.RoleAccounting)
		require.NoError(t, err)
		require.NotNil(t, s.Property)
		assert.Equal(t, int64(1), s.Property.Owners)
		assert.Zero(t, s.Property.Properties)
		assert.Equal(t, map[string]int64{"vacant": 0, "occupied": 0, "maintenance": 0}, s.Property.Units)
		require.NotNil(t, s.Finance)
		assert.Equal(t, int64(1), s.Finance.ActiveVoucherSeries)
		assert.Nil(t, s.HR)
	})

	t.Run("admin head", func(t *testing.T) {
		s, err := svc.Summary(ctx, identity.RoleAdminHead)
		require.NoError(t, err)
		assert.NotNil(t, s.Property)
		assert.Nil(t, s.Finance)
		require.NotNil(t, s.HR)
		assert.Zero(t, s.HR.PendingLeaves)
		require.NotNil(t, s.HR.OpenClearances)
		assert.Zero(t, *s.HR.OpenClearances)
	})

	t.Run("super accountant", func(t *testing.T) {
		s, err := svc.Summary(ctx, identity.RoleSuperAccountant)
		require.NoError(t, err)
		assert.NotNil(t, s.Finance)
		require.NotNil(t, s.HR)
		assert.Nil(t, s.HR.OpenClearances)
	})
}

func TestDashboardService_Widgets(t *testing.T) {
	svc, _ := newDashboard(t)
	ctx := testutil.ActorContext("accounting")

	doc, err := svc.Widget(ctx, "notes")
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(doc))

	require.NoError(t, svc.SaveWidget(ctx, "notes", json.RawMessage(`{"items":["call owner"]}`)))
	doc, err = svc.Widget(ctx, "notes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":["call owner"]}`, string(doc))

	err = svc.SaveWidget(ctx, "notes", json.RawMessage(`{broken`))
	testutil.RequireDomainError(t, err, "INVALID_WIDGET_DOCUMENT")

	_, err = svc.Widget(ctx, "Bad Name")
	testutil.RequireDomainError(t, err, "INVALID_WIDGET")

	_, err = svc.Widget(context.Background(), "notes")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
