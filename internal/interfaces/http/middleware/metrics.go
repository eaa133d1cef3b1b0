package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records request latency by route pattern and status.
// A nil metrics set turns the middleware into a pass-through.
func HTTPMetrics(metrics *telemetry.BusinessMetrics) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTP(c.Request.Context(), routePattern(c), c.Writer.Status(), time.Since(start))
	}
}

// routePattern keeps the label set bounded: ids stay as :id placeholders
// and unmatched paths collapse to one value
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

// HTTPMetricsStatusGroup returns the status class ("2xx", "4xx", ...)
func HTTPMetricsStatusGroup(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "unknown"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
