package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-at-least-32-chars",
		RefreshSecret:          "router-test-refresh-secret-32-chars",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "router-test",
	})
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.JWTAuthMiddleware(jwtService))

	// handlers are never reached when the permission check rejects
	r := NewRouter(engine)
	RegisterAPI(r, Handlers{}, APIOptions{}).Setup()
	return engine, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role identity.Role) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.Subject{
		UserID:      uuid.New(),
		Username:    "tester",
		Role:        string(role),
		Permissions: role.Permissions(),
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestRegisterAPI_RegistersEveryGroup(t *testing.T) {
	engine, _ := newAPIEngine(t)

	routes := make(map[string]bool)
	for _, ri := range engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/users/roles",
		"GET /api/v1/owners",
		"POST /api/v1/properties/:id/transfer",
		"GET /api/v1/units/stats",
		"GET /api/v1/fund-references/:id",
		"POST /api/v1/voucher-series/:id/issue",
		"GET /api/v1/ledger",
		"POST /api/v1/ledger/entries",
		"POST /api/v1/employees/:id/resign",
		"GET /api/v1/leaves/summary",
		"POST /api/v1/leaves/:id/approve",
		"GET /api/v1/shift-schedules",
		"GET /api/v1/tardiness/summary",
		"POST /api/v1/departments/reorder",
		"GET /api/v1/positions",
		"GET /api/v1/hierarchy",
		"POST /api/v1/clearance/drafts/:draft_id/switch",
		"GET /api/v1/clearance/templates/:department_id",
		"POST /api/v1/clearance/clearances/:id/tasks/:task_id/complete",
		"GET /api/v1/activity-logs",
		"GET /api/v1/exports/activity-logs.pdf",
		"PUT /api/v1/dashboard/widgets/:name",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRegisterAPI_PermissionGates(t *testing.T) {
	engine, jwtService := newAPIEngine(t)

	tests := []struct {
		name   string
		role   identity.Role
		method string
		path   string
	}{
		{"accounting cannot read employees", identity.RoleAccounting, http.MethodGet, "/api/v1/employees"},
		{"accounting cannot edit clearance drafts", identity.RoleAccounting, http.MethodPost, "/api/v1/clearance/drafts"},
		{"accounting cannot read the activity log", identity.RoleAccounting, http.MethodGet, "/api/v1/activity-logs"},
		{"admin head cannot post ledger entries", identity.RoleAdminHead, http.MethodPost, "/api/v1/ledger/entries"},
		{"admin head cannot issue vouchers", identity.RoleAdminHead, http.MethodPost, "/api/v1/voucher-series/" + uuid.NewString() + "/issue"},
		{"super accountant cannot approve leaves", identity.RoleSuperAccountant, http.MethodPost, "/api/v1/leaves/" + uuid.NewString() + "/approve"},
		{"accounting cannot create fund references", identity.RoleAccounting, http.MethodPost, "/api/v1/fund-references"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+tokenFor(t, jwtService, tt.role))
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRegisterAPI_RequiresAuthentication(t *testing.T) {
	engine, _ := newAPIEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/owners", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterAPI_LoginGuard(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret: "router-test-secret-at-least-32-chars",
		Issuer: "router-test",
	})
	engine := gin.New()
	engine.Use(middleware.JWTAuthMiddleware(jwtService))
	guard := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	RegisterAPI(NewRouter(engine), Handlers{}, APIOptions{LoginGuard: guard}).Setup()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouterUse_AppliesToAPIGroupOnly(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	g := NewDomainGroup("owners", "/owners").GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Header("X-API", "1")
			c.Next()
		}).
		Register(g).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/owners", nil))
	assert.Equal(t, "1", w.Header().Get("X-API"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, w.Header().Get("X-API"))
}

func TestRegisterAPI_RouteManifestMatchesEngine(t *testing.T) {
	engine := gin.New()
	r := RegisterAPI(NewRouter(engine), Handlers{}, APIOptions{})
	r.Setup()

	mounted := make(map[string]bool)
	for _, ri := range engine.Routes() {
		mounted[ri.Method+" "+ri.Path] = true
	}

	seen := make(map[string]bool)
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		assert.False(t, seen[key], "route %s registered twice", key)
		seen[key] = true
		assert.True(t, mounted[key], "route %s listed but not mounted", key)
	}
	assert.Len(t, seen, len(mounted))
}
