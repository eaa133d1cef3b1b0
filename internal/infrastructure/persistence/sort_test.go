package persistence

import (
	"testing"

	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence/models"
	"github.com/realtyadmin/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSortColumns_Order(t *testing.T) {
	cols := sortable("name")

	tests := []struct {
		name     string
		field    string
		dir      string
		ok       bool
		wantDesc bool
	}{
		{"common column", "created_at", "", true, true},
		{"asc any case", "name", " Asc ", true, false},
		{"unknown direction sorts desc", "name", "sideways", true, true},
		{"trimmed field", "  name  ", "asc", true, false},
		{"not whitelisted", "password_hash", "asc", false, false},
		{"case sensitive", "NAME", "asc", false, false},
		{"injection", "name; DROP TABLE users;--", "asc", false, false},
		{"empty", "", "asc", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := cols.order(tt.field, tt.dir)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.wantDesc, col.Desc)
			}
		})
	}
}

func TestSortable_DoesNotShareMaps(t *testing.T) {
	a := sortable("name")
	a["bogus"] = true
	assert.False(t, sortable("name")["bogus"])
	assert.False(t, ownerSort["bogus"])
}

func TestApplyPaging_SQL(t *testing.T) {
	db := testutil.NewSQLiteDB(t).Session(&gorm.Session{DryRun: true})

	render := func(filter shared.Filter) string {
		var out []models.OwnerModel
		stmt := applyPaging(db.Model(&models.OwnerModel{}), filter, ownerSort, "name ASC").Find(&out).Statement
		return stmt.SQL.String()
	}

	assert.Contains(t, render(shared.Filter{OrderBy: "code", OrderDir: "asc", Page: 2, PageSize: 10}),
		"ORDER BY `code` LIMIT 10 OFFSET 10")
	assert.Contains(t, render(shared.Filter{OrderBy: "email"}), "ORDER BY `email` DESC")
	assert.Contains(t, render(shared.Filter{OrderBy: "password_hash", OrderDir: "asc"}), "ORDER BY name ASC")
	assert.NotContains(t, render(shared.Filter{}), "LIMIT")
}
