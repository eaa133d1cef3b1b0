package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		h := NewSystemHandler("Realty Admin API", "test", map[string]HealthCheck{"database": ok, "cache": ok})
		c, w := testContext(http.MethodGet, "/health", "")
		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		require.Len(t, resp.Components, 2)
		assert.Equal(t, "cache", resp.Components[0].Name)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewSystemHandler("Realty Admin API", "test", map[string]HealthCheck{"database": down})
		c, w := testContext(http.MethodGet, "/health", "")
		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "connection refused", resp.Components[0].Error)
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("Realty Admin API", "1.2.3", nil)
	c, w := testContext(http.MethodGet, "/system/info", "")
	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Realty Admin API", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["go_version"])
}
