package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequirePermission(t *testing.T) {
	jwtService := newTestJWTService()
	accounting, _ := newTestTokenPair(t, jwtService, identity.RoleAccounting)
	adminHead, _ := newTestTokenPair(t, jwtService, identity.RoleAdminHead)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/ledger", RequirePermission(identity.PermLedgerRead), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/clearance", RequirePermission(identity.PermClearanceRead), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, "/ledger", accounting.AccessToken).Code)
	assert.Equal(t, http.StatusForbidden, serve(router, "/ledger", adminHead.AccessToken).Code)
	assert.Equal(t, http.StatusOK, serve(router, "/clearance", adminHead.AccessToken).Code)

	w := serve(router, "/clearance", accounting.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
}

func TestRequireAnyAndAllPermissions(t *testing.T) {
	jwtService := newTestJWTService()
	super, _ := newTestTokenPair(t, jwtService, identity.RoleSuperAccountant)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/any", RequireAnyPermission(identity.PermLeaveApprove, identity.PermLeaveRead), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/all", RequireAllPermissions(identity.PermLeaveApprove, identity.PermLeaveRead), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, "/any", super.AccessToken).Code)
	assert.Equal(t, http.StatusForbidden, serve(router, "/all", super.AccessToken).Code)
}

func TestRequirePermission_WithoutAuthentication(t *testing.T) {
	router := gin.New()
	router.GET("/ledger", RequirePermission(identity.PermLedgerRead), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, "/ledger", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestPermissionGuard_OnDeniedAndLogging(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	called := false
	guard := PermissionGuard{
		Logger: zap.New(core),
		OnDenied: func(c *gin.Context, perms []string) {
			called = true
			assert.Equal(t, []string{identity.PermUserWrite}, perms)
			c.AbortWithStatus(http.StatusTeapot)
		},
	}
	router := gin.New()
	router.GET("/x", guard.Require(identity.PermUserWrite), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusTeapot, serve(router, "/x", "").Code)
	assert.True(t, called)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Permission denied", entry.Message)
	assert.Equal(t, true, entry.ContextMap()["anonymous"])
}
