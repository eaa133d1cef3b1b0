package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/shared"
)

// DraftStore keeps clearance editor states as JSON documents. Every Put
// renews the expiry.
type DraftStore struct {
	store Store
	ttl   time.Duration
}

// NewDraftStore creates a draft store with the given idle expiry
func NewDraftStore(store Store, ttl time.Duration) *DraftStore {
	return &DraftStore{store: store, ttl: ttl}
}

func draftKey(id string) string {
	return "draft:" + id
}

// Get returns the draft or shared.ErrNotFound when it is unknown or expired
func (d *DraftStore) Get(ctx context.Context, draftID string) (*clearance.EditorState, error) {
	raw, err := d.store.Get(ctx, draftKey(draftID))
	if errors.Is(err, ErrMiss) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var state clearance.EditorState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", draftID, err)
	}
	return &state, nil
}

// Put stores the draft
func (d *DraftStore) Put(ctx context.Context, draftID string, state clearance.EditorState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", draftID, err)
	}
	return d.store.Set(ctx, draftKey(draftID), raw, d.ttl)
}

// Delete drops the draft
func (d *DraftStore) Delete(ctx context.Context, draftID string) error {
	return d.store.Delete(ctx, draftKey(draftID))
}

var _ clearance.DraftStore = (*DraftStore)(nil)
