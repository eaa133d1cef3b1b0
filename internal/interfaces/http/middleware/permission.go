package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionGuard checks the permissions carried in the JWT claims. Without
// claims the request is answered 401, with claims lacking a permission 403.
type PermissionGuard struct {
	// Logger records denials when set
	Logger *zap.Logger
	// OnDenied replaces the default JSON answer
	OnDenied func(c *gin.Context, required []string)
}

// Require passes when the caller holds permission
func (g PermissionGuard) Require(permission string) gin.HandlerFunc {
	return g.Any(permission)
}

// Any passes when the caller holds at least one of permissions
func (g PermissionGuard) Any(permissions ...string) gin.HandlerFunc {
	return g.check(permissions, func(has func(string) bool) bool {
		for _, p := range permissions {
			if has(p) {
				return true
			}
		}
		return false
	})
}

// All passes when the caller holds every one of permissions
func (g PermissionGuard) All(permissions ...string) gin.HandlerFunc {
	return g.check(permissions, func(has func(string) bool) bool {
		for _, p := range permissions {
			if !has(p) {
				return false
			}
		}
		return true
	})
}

func (g PermissionGuard) check(required []string, ok func(has func(string) bool) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims != nil && ok(claims.HasPermission) {
			c.Next()
			return
		}
		g.deny(c, required, claims == nil)
	}
}

func (g PermissionGuard) deny(c *gin.Context, required []string, anonymous bool) {
	if g.Logger != nil {
		g.Logger.Warn("Permission denied",
			zap.Bool("anonymous", anonymous),
			zap.String("user_id", GetJWTUserID(c)),
			zap.String("role", GetJWTRole(c)),
			zap.Strings("required_permissions", required),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
	if g.OnDenied != nil {
		g.OnDenied(c, required)
		return
	}

	status, code, message := http.StatusForbidden, dto.ErrCodeForbidden, "Access denied: insufficient permissions"
	if anonymous {
		status, code, message = http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required"
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}

// RequirePermission is PermissionGuard{}.Require
func RequirePermission(permission string) gin.HandlerFunc {
	return PermissionGuard{}.Require(permission)
}

// RequireAnyPermission is PermissionGuard{}.Any
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return PermissionGuard{}.Any(permissions...)
}

// RequireAllPermissions is PermissionGuard{}.All
func RequireAllPermissions(permissions ...string) gin.HandlerFunc {
	return PermissionGuard{}.All(permissions...)
}
