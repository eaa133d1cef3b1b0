package persistence

import (
	"errors"
	"strings"

	"github.com/realtyadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPaging orders by a whitelisted column, falling back to defaultOrder,
// and applies the page window
func applyPaging(query *gorm.DB, filter shared.Filter, allowed sortColumns, defaultOrder string) *gorm.DB {
	if col, ok := allowed.order(filter.OrderBy, filter.OrderDir); ok {
		query = query.Order(col)
	} else {
		query = query.Order(defaultOrder)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// applySearch adds a case-insensitive substring match across columns.
// LIKE wildcards typed by the user match literally.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	if strings.TrimSpace(search) == "" || len(columns) == 0 {
		return query
	}
	pattern := shared.LikePattern(search)
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// notFound maps gorm's missing-row error to the domain sentinel
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// deleted reports ErrNotFound when a delete touched no rows
func deleted(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
