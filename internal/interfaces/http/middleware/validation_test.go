package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftInput struct {
	Name      string `json:"name" binding:"required,max=20"`
	StartTime string `json:"start_time" binding:"required,clock"`
	Grace     int    `json:"grace_minutes" binding:"gte=0,lte=120"`
}

func shiftRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/shifts", func(c *gin.Context) {
		var in shiftInput
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleValidationError(t *testing.T) {
	router := shiftRouter()

	t.Run("invalid input lists every field", func(t *testing.T) {
		w := postJSON(router, "/shifts", `{"name":"","start_time":"25:99","grace_minutes":500}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Tag
		}
		assert.Equal(t, map[string]string{
			"name":          "required",
			"start_time":    "clock",
			"grace_minutes": "lte",
		}, fields)
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := postJSON(router, "/shifts", `{"name":"Morning","start_time":"08:30","grace_minutes":15}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type sample struct {
		Required string `validate:"required"`
		Email    string `validate:"email"`
		Min      string `validate:"min=5"`
		OneOf    string `validate:"oneof=a b c"`
		UUID     string `validate:"uuid"`
		Clock    string `validate:"clock"`
	}
	v := validator.New()
	require.NoError(t, v.RegisterValidation("clock", validateClock))

	err := v.Struct(sample{Email: "nope", Min: "ab", OneOf: "d", UUID: "x", Clock: "7pm"})
	require.Error(t, err)

	got := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		got[e.Field()] = getValidationMessage(e)
	}
	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Invalid email format", got["Email"])
	assert.Equal(t, "Must be at least 5 characters", got["Min"])
	assert.Equal(t, "Must be one of: a b c", got["OneOf"])
	assert.Equal(t, "Invalid UUID format", got["UUID"])
	assert.Equal(t, "Must be a time in HH:MM format", got["Clock"])
}
