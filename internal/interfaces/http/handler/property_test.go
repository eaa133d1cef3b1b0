package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	propertyapp "github.com/realtyadmin/backend/internal/application/property"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newPropertyEngine mounts the owner, property and unit handlers on SQLite-backed services
func newPropertyEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	ownerRepo := persistence.NewGormOwnerRepository(db)
	propertyRepo := persistence.NewGormPropertyRepository(db)
	unitRepo := persistence.NewGormUnitRepository(db)
	logger := zap.NewNop()

	owners := NewOwnerHandler(propertyapp.NewOwnerService(ownerRepo, propertyRepo, nil, logger))
	properties := NewPropertyHandler(propertyapp.NewPropertyService(propertyRepo, ownerRepo, unitRepo, nil, logger))
	units := NewUnitHandler(propertyapp.NewUnitService(unitRepo, propertyRepo, nil, logger))

	engine := gin.New()
	engine.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Request = c.Request.WithContext(shared.WithActor(c.Request.Context(), shared.Actor{
			ID:   testutil.TestUserID(),
			Name: "test-admin",
			Role: "admin_head",
		}))
		c.Next()
	})
	engine.POST("/owners", owners.Create)
	engine.GET("/owners", owners.List)
	engine.GET("/owners/:id", owners.GetByID)
	engine.POST("/owners/:id/deactivate", owners.Deactivate)
	engine.DELETE("/owners/:id", owners.Delete)
	engine.POST("/properties", properties.Create)
	engine.POST("/units", units.Create)
	engine.GET("/units/stats", units.Stats)
	engine.POST("/units/:id/transition", units.Transition)
	engine.DELETE("/units/:id", units.Delete)
	return engine
}

func do(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	return testutil.Perform(engine, testutil.Request{Method: method, Target: target, Body: body})
}

// createdID posts body and returns the id of the created resource
func createdID(t *testing.T, engine *gin.Engine, target, body string) string {
	t.Helper()
	w := do(engine, http.MethodPost, target, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w).Data.(map[string]any)
	return data["id"].(string)
}

func TestOwnerHandler(t *testing.T) {
	engine := newPropertyEngine(t)

	id := createdID(t, engine, "/owners", `{"code":"own-001","name":"Santos Holdings","email":"office@santos.example"}`)
	createdID(t, engine, "/owners", `{"code":"OWN-002","name":"Reyes Realty"}`)

	t.Run("duplicate code", func(t *testing.T) {
		w := do(engine, http.MethodPost, "/owners", `{"code":"OWN-001","name":"Again"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decode(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "OWNER_CODE_EXISTS", resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("validation details", func(t *testing.T) {
		w := do(engine, http.MethodPost, "/owners", `{"code":"X","email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := do(engine, http.MethodPost, "/owners", `{"code":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/owners/"+id, "")
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w).Data.(map[string]any)
		assert.Equal(t, "OWN-001", data["code"])
		assert.Equal(t, float64(0), data["property_count"])
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/owners/"+testutil.NewRandomUUID().String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "OWNER_NOT_FOUND", decode(t, w).Error.Code)

		w = do(engine, http.MethodGet, "/owners/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list with search", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/owners?search=santos&page=1&page_size=10", "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Equal(t, 10, resp.Meta.PageSize)
		assert.Len(t, resp.Data.([]any), 1)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/owners?search=nobody", "")
		require.Equal(t, http.StatusOK, w.Code)
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.JSONEq(t, `[]`, string(raw["data"]))
	})

	t.Run("page size over limit", func(t *testing.T) {
		w := do(engine, http.MethodGet, "/owners?page_size=500", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOwnerHandler_DeleteBlockedByProperties(t *testing.T) {
	engine := newPropertyEngine(t)

	ownerID := createdID(t, engine, "/owners", `{"code":"OWN-010","name":"Cruz Estates"}`)
	createdID(t, engine, "/properties", `{"code":"PRP-010","owner_id":"`+ownerID+`","name":"Cruz Tower","type":"commercial"}`)

	w := do(engine, http.MethodDelete, "/owners/"+ownerID, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "OWNER_HAS_PROPERTIES", decode(t, w).Error.Code)

	spare := createdID(t, engine, "/owners", `{"code":"OWN-011","name":"Spare"}`)
	w = do(engine, http.MethodDelete, "/owners/"+spare, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPropertyHandler_CreateRejectsInactiveOwner(t *testing.T) {
	engine := newPropertyEngine(t)

	ownerID := createdID(t, engine, "/owners", `{"code":"OWN-020","name":"Dormant"}`)
	require.Equal(t, http.StatusOK, do(engine, http.MethodPost, "/owners/"+ownerID+"/deactivate", "").Code)

	w := do(engine, http.MethodPost, "/properties", `{"code":"PRP-020","owner_id":"`+ownerID+`","name":"Old Mill","type":"land"}`)
	assert.Equal(t, "OWNER_INACTIVE", decode(t, w).Error.Code)

	w = do(engine, http.MethodPost, "/properties", `{"code":"PRP-021","owner_id":"`+ownerID+`","name":"Old Mill","type":"castle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnitHandler_Lifecycle(t *testing.T) {
	engine := newPropertyEngine(t)

	ownerID := createdID(t, engine, "/owners", `{"code":"OWN-030","name":"Lim Group"}`)
	propertyID := createdID(t, engine, "/properties", `{"code":"PRP-030","owner_id":"`+ownerID+`","name":"Lim Plaza","type":"mixed"}`)
	unitID := createdID(t, engine, "/units", `{"property_id":"`+propertyID+`","unit_number":"101","floor":1,"area_sqm":"42.5","monthly_rent":"18000.00"}`)

	w := do(engine, http.MethodPost, "/units", `{"property_id":"`+propertyID+`","unit_number":"101","floor":1,"area_sqm":"40","monthly_rent":"15000"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "UNIT_NUMBER_EXISTS", decode(t, w).Error.Code)

	w = do(engine, http.MethodPost, "/units/"+unitID+"/transition", `{"action":"occupy"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "occupied", decode(t, w).Data.(map[string]any)["status"])

	w = do(engine, http.MethodPost, "/units/"+unitID+"/transition", `{"action":"occupy"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ERR_INVALID_STATE", decode(t, w).Error.Code)

	w = do(engine, http.MethodPost, "/units/"+unitID+"/transition", `{"action":"demolish"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(engine, http.MethodGet, "/units/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w).Data.(map[string]any)["occupied"])

	w = do(engine, http.MethodDelete, "/units/"+unitID, "")
	assert.Equal(t, "UNIT_OCCUPIED", decode(t, w).Error.Code)
}
