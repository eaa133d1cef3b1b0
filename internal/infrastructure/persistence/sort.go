package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a list endpoint may order by. Client
// input never reaches ORDER BY unless it matches a key exactly.
type sortColumns map[string]bool

func sortable(columns ...string) sortColumns {
	s := sortColumns{"id": true, "created_at": true, "updated_at": true}
	for _, c := range columns {
		s[c] = true
	}
	return s
}

// order builds the ORDER BY term for field. Direction defaults to DESC
// unless dir is "asc" in any case.
func (s sortColumns) order(field, dir string) (clause.OrderByColumn, bool) {
	field = strings.TrimSpace(field)
	if !s[field] {
		return clause.OrderByColumn{}, false
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: field},
		Desc:   !strings.EqualFold(strings.TrimSpace(dir), "asc"),
	}, true
}

var (
	userSort          = sortable("username", "email", "display_name", "role", "status", "last_login_at")
	ownerSort         = sortable("code", "name", "email", "status")
	propertySort      = sortable("code", "name", "type", "city", "status")
	unitSort          = sortable("unit_number", "floor", "area_sqm", "monthly_rent", "status")
	fundReferenceSort = sortable("code", "name", "status")
	voucherSeriesSort = sortable("prefix", "next_number", "end_number", "status")
	employeeSort      = sortable("employee_no", "first_name", "last_name", "hire_date", "status")
	leaveSort         = sortable("start_date", "end_date", "type", "status", "days")
	shiftSort         = sortable("name", "start_time", "end_time", "active")
	tardinessSort     = sortable("date", "minutes_late", "actual_in")
	departmentSort    = sortable("code", "name", "level", "sort_order", "status")
	positionSort      = sortable("code", "title", "level")
	clearanceSort     = sortable("status", "started_at", "completed_at")
)
