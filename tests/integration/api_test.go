//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	auditapp "github.com/realtyadmin/backend/internal/application/audit"
	clearanceapp "github.com/realtyadmin/backend/internal/application/clearance"
	dashboardapp "github.com/realtyadmin/backend/internal/application/dashboard"
	exportapp "github.com/realtyadmin/backend/internal/application/export"
	financeapp "github.com/realtyadmin/backend/internal/application/finance"
	hrapp "github.com/realtyadmin/backend/internal/application/hr"
	identityapp "github.com/realtyadmin/backend/internal/application/identity"
	orgapp "github.com/realtyadmin/backend/internal/application/organization"
	propertyapp "github.com/realtyadmin/backend/internal/application/property"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/cache"
	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"github.com/realtyadmin/backend/internal/interfaces/http/handler"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
	"github.com/realtyadmin/backend/internal/interfaces/http/router"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// APITestServer is the full /api/v1 route tree on a migrated postgres
type APITestServer struct {
	DB     *TestDB
	Engine *gin.Engine
	Users  *identityapp.UserService
}

func NewAPITestServer(t *testing.T) *APITestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	tdb := NewSharedTestDB(t)
	t.Cleanup(tdb.CleanTables)
	db := tdb.DB
	log := zap.NewNop()

	mem := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = mem.Close() })
	blacklist := auth.NewInMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db)
	activityRepo := persistence.NewGormActivityLogRepository(db)
	ownerRepo := persistence.NewGormOwnerRepository(db)
	propertyRepo := persistence.NewGormPropertyRepository(db)
	unitRepo := persistence.NewGormUnitRepository(db)
	fundRepo := persistence.NewGormFundReferenceRepository(db)
	seriesRepo := persistence.NewGormVoucherSeriesRepository(db)
	ledgerRepo := persistence.NewGormLedgerRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	leaveRepo := persistence.NewGormLeaveRepository(db)
	shiftRepo := persistence.NewGormShiftScheduleRepository(db)
	tardinessRepo := persistence.NewGormTardinessRepository(db)
	departmentRepo := persistence.NewGormDepartmentRepository(db)
	positionRepo := persistence.NewGormPositionRepository(db)
	templateRepo := persistence.NewGormTemplateRepository(db)
	clearanceRepo := persistence.NewGormClearanceRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-access-secret-0123456789abcdef",
		RefreshSecret:          "integration-refresh-secret-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "realty-test",
		MaxRefreshCount:        5,
	})
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, activityRepo, nil, nil,
		identityapp.AuthServiceConfig{MaxLoginAttempts: 5, LockDuration: 15 * time.Minute}, log)
	userService := identityapp.NewUserService(userRepo, blacklist, nil, 24*time.Hour, log)
	auditService := auditapp.NewAuditService(activityRepo, log)
	hrReports := hrapp.NewReportService(employeeRepo, leaveRepo, tardinessRepo, log)
	clearanceService := clearanceapp.NewClearanceService(clearanceRepo, templateRepo, employeeRepo, nil, nil, log)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Revocations = authService
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService),
		User:     handler.NewUserHandler(userService),
		Owner:    handler.NewOwnerHandler(propertyapp.NewOwnerService(ownerRepo, propertyRepo, nil, log)),
		Property: handler.NewPropertyHandler(propertyapp.NewPropertyService(propertyRepo, ownerRepo, unitRepo, nil, log)),
		Unit:     handler.NewUnitHandler(propertyapp.NewUnitService(unitRepo, propertyRepo, nil, log)),
		FundReference: handler.NewFundReferenceHandler(
			financeapp.NewFundReferenceService(fundRepo, ledgerRepo, nil, log)),
		Voucher: handler.NewVoucherHandler(financeapp.NewVoucherService(seriesRepo, nil, nil, log)),
		Ledger: handler.NewLedgerHandler(
			financeapp.NewLedgerService(ledgerRepo, fundRepo, ownerRepo, nil, nil, log)),
		Employee: handler.NewEmployeeHandler(hrapp.NewEmployeeService(employeeRepo, leaveRepo, tardinessRepo,
			shiftRepo, departmentRepo, positionRepo, nil, log)),
		Leave:     handler.NewLeaveHandler(hrapp.NewLeaveService(leaveRepo, employeeRepo, nil, nil, log)),
		Shift:     handler.NewShiftHandler(hrapp.NewShiftService(shiftRepo, employeeRepo, nil, log)),
		Tardiness: handler.NewTardinessHandler(hrapp.NewTardinessService(tardinessRepo, employeeRepo, shiftRepo, nil, log)),
		HRReport:  handler.NewHRReportHandler(hrReports),
		Department: handler.NewDepartmentHandler(
			orgapp.NewDepartmentService(departmentRepo, positionRepo, employeeRepo, nil, log)),
		Position: handler.NewPositionHandler(orgapp.NewPositionService(positionRepo, departmentRepo, nil, log)),
		Clearance: handler.NewClearanceHandler(
			clearanceapp.NewDraftService(templateRepo, clearanceRepo, departmentRepo,
				cache.NewDraftStore(mem, time.Hour), clearance.DefaultLimits(), nil, nil, log),
			clearanceService),
		ActivityLog: handler.NewActivityLogHandler(auditService),
		Export: handler.NewExportHandler(exportapp.NewExportService(auditService, hrReports, nil, nil,
			exportapp.Config{CompanyName: "Realty Test", Location: time.UTC}, nil, log)),
		Dashboard: handler.NewDashboardHandler(dashboardapp.NewDashboardService(dashboardapp.Repositories{
			Owners:        ownerRepo,
			Properties:    propertyRepo,
			Units:         unitRepo,
			VoucherSeries: seriesRepo,
			Leaves:        leaveRepo,
			Tardiness:     tardinessRepo,
			Clearances:    clearanceRepo,
		}, cache.NewWidgetStore(mem), time.UTC, log)),
	}, router.APIOptions{})
	r.Setup()

	return &APITestServer{DB: tdb, Engine: engine, Users: userService}
}

// Request sends body as JSON with an optional bearer token
func (s *APITestServer) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	return testutil.Perform(s.Engine, testutil.Request{Method: method, Target: path, Body: body, Token: token})
}

// CreateUser stores an active account with role
func (s *APITestServer) CreateUser(t *testing.T, username, password string, role identity.Role) {
	t.Helper()
	ctx := shared.WithActor(context.Background(), shared.SystemActor)
	_, err := s.Users.Create(ctx, identityapp.CreateUserInput{
		Username:    username,
		Password:    password,
		Role:        role,
		DisplayName: username,
	})
	require.NoError(t, err)
}

// Login returns the access token of username
func (s *APITestServer) Login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.Request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result identityapp.LoginResult
	testutil.DecodeData(t, w, &result)
	require.NotEmpty(t, result.AccessToken)
	return result.AccessToken
}

func parse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	return testutil.DecodeResponse(t, w)
}

func TestAPI_AuthenticationAndRoles(t *testing.T) {
	s := NewAPITestServer(t)
	s.CreateUser(t, "head.admin", "Admin-pass-01", identity.RoleAdminHead)
	s.CreateUser(t, "clerk.acct", "Clerk-pass-01", identity.RoleAccounting)

	t.Run("no token", func(t *testing.T) {
		w := s.Request(http.MethodGet, "/api/v1/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.Request(http.MethodPost, "/api/v1/auth/login", map[string]string{
			"username": "head.admin",
			"password": "not-the-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, parse(t, w).Success)
	})

	admin := s.Login(t, "head.admin", "Admin-pass-01")
	clerk := s.Login(t, "clerk.acct", "Clerk-pass-01")

	t.Run("me", func(t *testing.T) {
		w := s.Request(http.MethodGet, "/api/v1/auth/me", nil, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := parse(t, w).Data.(map[string]any)
		assert.Equal(t, "head.admin", data["username"])
		assert.Equal(t, "admin_head", data["role"])
	})

	t.Run("accounting cannot manage users", func(t *testing.T) {
		w := s.Request(http.MethodGet, "/api/v1/users", nil, clerk)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.Request(http.MethodGet, "/api/v1/users", nil, admin)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin head cannot read the ledger", func(t *testing.T) {
		w := s.Request(http.MethodGet, "/api/v1/ledger?account_type=client&account_id=00000000-0000-0000-0000-000000000001", nil, admin)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		w := s.Request(http.MethodPost, "/api/v1/auth/logout", nil, clerk)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.Request(http.MethodGet, "/api/v1/auth/me", nil, clerk)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAPI_OwnerLedgerFlow(t *testing.T) {
	s := NewAPITestServer(t)
	s.CreateUser(t, "clerk.flow", "Clerk-pass-02", identity.RoleAccounting)
	token := s.Login(t, "clerk.flow", "Clerk-pass-02")

	w := s.Request(http.MethodPost, "/api/v1/owners", map[string]any{
		"code": "OWN-500",
		"name": "Bautista Properties",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ownerID := parse(t, w).Data.(map[string]any)["id"].(string)

	post := func(body map[string]any) *httptest.ResponseRecorder {
		body["account_type"] = "client"
		body["account_id"] = ownerID
		return s.Request(http.MethodPost, "/api/v1/ledger/entries", body, token)
	}

	w = post(map[string]any{"description": "January rent", "credit": "18000.00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = post(map[string]any{"description": "Repairs", "debit": "2500.75"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "15499.25", parse(t, w).Data.(map[string]any)["running_balance"])

	t.Run("both amounts", func(t *testing.T) {
		w := post(map[string]any{"description": "Bad", "debit": "1", "credit": "1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("view newest first", func(t *testing.T) {
		w := s.Request(http.MethodGet, "/api/v1/ledger?account_type=client&order=newest&account_id="+ownerID, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := parse(t, w).Data.(map[string]any)
		rows := data["rows"].([]any)
		require.Len(t, rows, 2)
		assert.Equal(t, "Repairs", rows[0].(map[string]any)["description"])
		assert.Equal(t, "15499.25", data["ending_balance"])
	})

	t.Run("dashboard counts the owner", func(t *testing.T) {
		w := s.Request(http.MethodGet, "/api/v1/dashboard", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}
