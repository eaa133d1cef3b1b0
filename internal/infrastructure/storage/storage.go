// Package storage archives generated export files in object storage.
package storage

import (
	"context"
	"errors"
	"path"
	"regexp"
	"strings"
	"time"
)

// ErrEmptyKey is returned for operations without an object key
var ErrEmptyKey = errors.New("storage key is required")

// ObjectStorage stores export artifacts and hands out time limited links
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// DownloadURL returns a link valid for expiresIn, or the store default when zero
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ExportKey builds the object key of an export file:
// exports/<kind>/<yyyy>/<mm>/<yyyymmdd-hhmmss>-<filename>
func ExportKey(kind, filename string, at time.Time) string {
	at = at.UTC()
	name := unsafeKeyChars.ReplaceAllString(strings.TrimSpace(filename), "_")
	if name == "" {
		name = "export"
	}
	return path.Join("exports", unsafeKeyChars.ReplaceAllString(kind, "_"),
		at.Format("2006"), at.Format("01"), at.Format("20060102-150405")+"-"+name)
}
