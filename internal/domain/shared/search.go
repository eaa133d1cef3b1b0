package shared

import "strings"

// ContainsFold reports whether needle is a case-insensitive substring of
// haystack. Surrounding whitespace in needle is ignored and an empty needle
// matches everything.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterBySubstring keeps the items for which any of the fields returned by
// fields contains query. Order is preserved.
func FilterBySubstring[T any](items []T, query string, fields func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if ContainsFold(f, query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// LikePattern builds a lowercase SQL LIKE pattern for a substring search.
// LIKE wildcards in the query are escaped with a backslash.
func LikePattern(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}
