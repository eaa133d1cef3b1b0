package cache

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

const maxWidgetSize = 64 << 10

var widgetNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,39}$`)

var (
	ErrInvalidWidgetName = shared.NewDomainError("INVALID_WIDGET", "widget name must be 1-40 lowercase letters, digits, '-' or '_'")
	ErrWidgetTooLarge    = shared.NewDomainError("WIDGET_TOO_LARGE", "widget document exceeds 64 KiB")
	ErrInvalidWidgetJSON = shared.NewDomainError("INVALID_WIDGET_DOCUMENT", "widget document must be valid JSON")
)

// WidgetStore keeps one JSON document per user and widget name
type WidgetStore struct {
	store Store
}

// NewWidgetStore creates a widget store
func NewWidgetStore(store Store) *WidgetStore {
	return &WidgetStore{store: store}
}

func widgetKey(userID uuid.UUID, name string) string {
	return "widget:" + userID.String() + ":" + name
}

// Get returns the stored document, or JSON null when nothing was stored
func (w *WidgetStore) Get(ctx context.Context, userID uuid.UUID, name string) (json.RawMessage, error) {
	if !widgetNamePattern.MatchString(name) {
		return nil, ErrInvalidWidgetName
	}
	raw, err := w.store.Get(ctx, widgetKey(userID, name))
	if errors.Is(err, ErrMiss) {
		return json.RawMessage("null"), nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// Put replaces the document
func (w *WidgetStore) Put(ctx context.Context, userID uuid.UUID, name string, doc json.RawMessage) error {
	if !widgetNamePattern.MatchString(name) {
		return ErrInvalidWidgetName
	}
	if len(doc) > maxWidgetSize {
		return ErrWidgetTooLarge
	}
	if !json.Valid(doc) {
		return ErrInvalidWidgetJSON
	}
	return w.store.Set(ctx, widgetKey(userID, name), doc, 0)
}
