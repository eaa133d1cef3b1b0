package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Set(middleware.RequestIDKey, "req-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	return testutil.DecodeResponse(t, w)
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"shared not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"module not found", shared.NewDomainError("OWNER_NOT_FOUND", "Owner not found"), http.StatusNotFound, "OWNER_NOT_FOUND"},
		{"wrapped domain error", fmt.Errorf("save: %w", shared.NewDomainError("UNIT_NUMBER_EXISTS", "dup")), http.StatusConflict, "UNIT_NUMBER_EXISTS"},
		{"business rule", shared.NewDomainError("UNBALANCED_ENTRY", "nope"), http.StatusUnprocessableEntity, "UNBALANCED_ENTRY"},
		{"unsaved changes", shared.NewDomainError("UNSAVED_CHANGES", "pending edits"), http.StatusConflict, "UNSAVED_CHANGES"},
		{"plain error", errors.New("db exploded"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(http.MethodGet, "/", "")
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}

	t.Run("internal errors hide the cause", func(t *testing.T) {
		c, w := testContext(http.MethodGet, "/", "")
		h.HandleError(c, errors.New("pq: password authentication failed"))
		assert.NotContains(t, w.Body.String(), "pq:")
	})
}

func TestBaseHandler_BindJSON(t *testing.T) {
	type input struct {
		Name string `json:"name" binding:"required"`
	}
	h := &BaseHandler{}

	c, w := testContext(http.MethodPost, "/", `{}`)
	var in input
	assert.False(t, h.BindJSON(c, &in))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "name", resp.Error.Details[0].Field)

	c, w = testContext(http.MethodPost, "/", `{"name":`)
	assert.False(t, h.BindJSON(c, &in))
	assert.Equal(t, dto.ErrCodeInvalidJSON, decode(t, w).Error.Code)

	c, _ = testContext(http.MethodPost, "/", `{"name":"ok"}`)
	assert.True(t, h.BindJSON(c, &in))
	assert.Equal(t, "ok", in.Name)
}

func TestBaseHandler_ParamID(t *testing.T) {
	h := &BaseHandler{}
	c, w := testContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := h.ParamID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decode(t, w).Error.Code)
}

func TestRespondPage(t *testing.T) {
	h := &BaseHandler{}
	c, w := testContext(http.MethodGet, "/", "")
	page := shared.NewPaginated[string](nil, 45, 2, 20)
	respondPage(h, c, &page, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":45,"page":2,"page_size":20,"total_pages":3}}`, w.Body.String())
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", got.Format(dateLayout))

	got, err = parseDate("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("03/01/2026")
	assert.Error(t, err)
}
