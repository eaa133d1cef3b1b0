package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type record struct {
	Name string
	Code string
}

func TestFilterBySubstring(t *testing.T) {
	records := []record{
		{Name: "Greenfield Towers", Code: "GFT"},
		{Name: "Harbor View", Code: "HBV"},
		{Name: "Maple Court", Code: "MPC"},
	}
	fields := func(r record) []string { return []string{r.Name, r.Code} }

	t.Run("substring present in exactly one record yields one row", func(t *testing.T) {
		got := FilterBySubstring(records, "harbor", fields)
		assert.Len(t, got, 1)
		assert.Equal(t, "Harbor View", got[0].Name)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, FilterBySubstring(records, "   ", fields), 3)
	})

	t.Run("matches on any field keeping order", func(t *testing.T) {
		got := FilterBySubstring(records, "c", fields)
		assert.Equal(t, []record{records[0], records[2]}, got)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		assert.Empty(t, FilterBySubstring(records, "zzz", fields))
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%harbor%", LikePattern("  Harbor "))
	assert.Equal(t, `%50\%\_off%`, LikePattern("50%_off"))
}

func TestDomainErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewDomainError("NOT_FOUND", "owner not found"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
}

func TestActorFromContext(t *testing.T) {
	assert.True(t, ActorFromContext(context.Background()).IsSystem())

	id := uuid.New()
	ctx := WithActor(context.Background(), Actor{ID: id, Name: "jdoe", Role: "accounting"})
	actor := ActorFromContext(ctx)
	assert.Equal(t, id, actor.ID)
	assert.Equal(t, "accounting", actor.Role)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 10, Filter{Page: 2, PageSize: 10}.Offset())
}

func TestNewFilter(t *testing.T) {
	f := NewFilter(0, 500, "  tower ", "", "")
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.Equal(t, "tower", f.Search)
	assert.Equal(t, "created_at", f.OrderBy)

	f = f.With("status", "active").With("type", "")
	assert.Equal(t, "active", f.Filters["status"])
	assert.NotContains(t, f.Filters, "type")
}
