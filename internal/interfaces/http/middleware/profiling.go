package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
)

type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

func Profiling() gin.HandlerFunc {
	return ProfilingWithConfig(DefaultProfilingConfig())
}

// ProfilingWithConfig attaches pyroscope labels to the request so CPU and
// allocation samples can be split per module and handler. The role label is
// only set when mounted after JWT auth.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	skip := func(p string) bool {
		if slices.Contains(cfg.SkipPaths, p) {
			return true
		}
		return slices.ContainsFunc(cfg.SkipPathPrefixes, func(prefix string) bool {
			return strings.HasPrefix(p, prefix)
		})
	}

	return func(c *gin.Context) {
		if skip(c.Request.URL.Path) {
			c.Next()
			return
		}
		route := c.FullPath()
		labels := map[string]string{
			telemetry.ProfilingLabelMethod:     c.Request.Method,
			telemetry.ProfilingLabelRoute:      route,
			telemetry.ProfilingLabelController: extractControllerFromRoute(route),
			telemetry.ProfilingLabelOperation:  operationName(c.HandlerName()),
			telemetry.ProfilingLabelRole:       GetJWTRole(c),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// extractControllerFromRoute returns the module segment of a route,
// "/api/v1/owners/:id/properties" -> "owners"
func extractControllerFromRoute(route string) string {
	for part := range strings.SplitSeq(route, "/") {
		switch {
		case part == "", part == "api", isVersionSegment(part):
		case part[0] == ':' || part[0] == '*':
		default:
			return part
		}
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || (segment[0] != 'v' && segment[0] != 'V') {
		return false
	}
	return strings.Trim(segment[1:], "0123456789") == ""
}

// operationName shortens a gin handler name to Type.Method,
// "github.com/x/handler.(*OwnerHandler).Get-fm" -> "OwnerHandler.Get"
func operationName(handler string) string {
	if i := strings.LastIndexByte(handler, '/'); i >= 0 {
		handler = handler[i+1:]
	}
	if _, rest, ok := strings.Cut(handler, "."); ok {
		handler = rest
	}
	handler = strings.TrimSuffix(handler, "-fm")
	return strings.NewReplacer("(*", "", ")", "").Replace(handler)
}
