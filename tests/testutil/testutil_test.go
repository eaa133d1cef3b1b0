package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"github.com/realtyadmin/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDB(t *testing.T) {
	m := NewMockDB(t)
	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "owners"`).
		WillReturnRows(m.Mock.NewRows([]string{"count"}).AddRow(3))

	var n int64
	require.NoError(t, m.DB.Model(&models.OwnerModel{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
	m.ExpectationsWereMet(t)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)
	for _, model := range models.AllModels() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}
}

func TestActorContext(t *testing.T) {
	actor := shared.ActorFromContext(ActorContext("accounting"))
	assert.Equal(t, TestUserID(), actor.ID)
	assert.Equal(t, "accounting", actor.Role)
	assert.Equal(t, "test-accounting", actor.Name)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("owner-1"), NewTestUUID("owner-1"))
	assert.NotEqual(t, NewTestUUID("owner-1"), NewTestUUID("owner-2"))
	assert.NotEqual(t, uuid.Nil, NewRandomUUID())
}

func TestRequireDomainError(t *testing.T) {
	RequireDomainError(t, shared.NewDomainError("OWNER_NOT_FOUND", "Owner not found"), "OWNER_NOT_FOUND")
}

func TestPublisher(t *testing.T) {
	p := NewPublisher()
	ctx := context.Background()
	first := shared.NewBaseDomainEvent("OwnerCreated", "Owner", uuid.New())
	second := shared.NewBaseDomainEvent("OwnerUpdated", "Owner", first.AggregateID())

	require.NoError(t, p.Publish(ctx, &first, &second))
	assert.Equal(t, []string{"OwnerCreated", "OwnerUpdated"}, p.Types())
	assert.Len(t, p.Events(), 2)

	p.FailWith(assert.AnError)
	assert.ErrorIs(t, p.Publish(ctx, &first), assert.AnError)
	assert.Len(t, p.Events(), 2)

	p.Reset()
	assert.Empty(t, p.Types())
	require.NoError(t, p.Publish(ctx, &first))
}

func TestPerform(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("BAD_REQUEST", err.Error()))
			return
		}
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, dto.NewSuccessResponse(body))
	})

	w := Perform(engine, Request{
		Method: http.MethodPost,
		Target: "/echo",
		Body:   map[string]string{"name": "Santos"},
		Token:  "abc",
	})
	var got map[string]string
	DecodeData(t, w, &got)
	assert.Equal(t, "Santos", got["name"])
	assert.Equal(t, "Bearer abc", got["auth"])

	w = Perform(engine, Request{Method: http.MethodPost, Target: "/echo", Body: `{`})
	RequireErrorCode(t, w, http.StatusBadRequest, "BAD_REQUEST")
}
