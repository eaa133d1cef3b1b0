package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_NilIsPassThrough(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(nil))
	router.GET("/owners/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/owners/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutePattern(t *testing.T) {
	var seen []string
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		seen = append(seen, routePattern(c))
	})
	router.GET("/owners/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/owners/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, []string{"/owners/:id", "unmatched"}, seen)
}

func TestHTTPMetricsStatusGroup(t *testing.T) {
	assert.Equal(t, "2xx", HTTPMetricsStatusGroup(204))
	assert.Equal(t, "4xx", HTTPMetricsStatusGroup(422))
	assert.Equal(t, "5xx", HTTPMetricsStatusGroup(503))
	assert.Equal(t, "unknown", HTTPMetricsStatusGroup(42))
}
