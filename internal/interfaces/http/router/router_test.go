package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func status(code int) gin.HandlerFunc {
	return func(c *gin.Context) { c.Status(code) }
}

func TestRouter_BasePath(t *testing.T) {
	engine := gin.New()
	assert.Equal(t, "/api/v1", NewRouter(engine).BasePath())
	assert.Equal(t, "/api/v2", NewRouter(engine, WithAPIVersion("v2")).BasePath())
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("units", "/units").
		GET("", status(http.StatusOK)).
		POST("", status(http.StatusCreated)).
		PUT("/:id", status(http.StatusOK)).
		PATCH("/:id", status(http.StatusAccepted)).
		DELETE("/:id", status(http.StatusNoContent))
	assert.Equal(t, "units", g.Name())
	assert.Equal(t, "/units", g.Prefix())
	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/api/v1/units", http.StatusOK},
		{http.MethodPost, "/api/v1/units", http.StatusCreated},
		{http.MethodPut, "/api/v1/units/u-1", http.StatusOK},
		{http.MethodPatch, "/api/v1/units/u-1", http.StatusAccepted},
		{http.MethodDelete, "/api/v1/units/u-1", http.StatusNoContent},
		{http.MethodGet, "/units", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := testutil.Perform(engine, testutil.Request{Method: tt.method, Target: tt.target})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDomainGroup_MiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("clearance", "/clearance").Use(func(c *gin.Context) {
		c.Header("X-Module", "clearance")
		c.Next()
	})
	g.Group("drafts", "/drafts").POST("", status(http.StatusCreated))
	g.Group("templates", "/templates").GET("/:department_id", status(http.StatusOK))
	NewRouter(engine).Register(g).Setup()

	w := testutil.Perform(engine, testutil.Request{Method: http.MethodPost, Target: "/api/v1/clearance/drafts"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "clearance", w.Header().Get("X-Module"), "group middleware reaches subgroups")

	w = testutil.Perform(engine, testutil.Request{Target: "/api/v1/clearance/templates/d-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Routes(t *testing.T) {
	g := NewDomainGroup("ledger", "/ledger").
		GET("", status(http.StatusOK)).
		POST("/entries", status(http.StatusCreated))
	g.Group("export", "/export").GET("/", status(http.StatusOK))

	r := NewRouter(gin.New()).Register(g).Register(NewDomainGroup("dashboard", "/dashboard").GET("", status(http.StatusOK)))

	assert.Equal(t, []Route{
		{Group: "ledger", Method: http.MethodGet, Path: "/api/v1/ledger"},
		{Group: "ledger", Method: http.MethodPost, Path: "/api/v1/ledger/entries"},
		{Group: "export", Method: http.MethodGet, Path: "/api/v1/ledger/export/"},
		{Group: "dashboard", Method: http.MethodGet, Path: "/api/v1/dashboard"},
	}, r.Routes())
}
