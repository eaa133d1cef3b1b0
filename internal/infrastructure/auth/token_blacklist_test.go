package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revoke(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Expiry(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	blacklist.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "jti-short", time.Minute))
	now = now.Add(2 * time.Minute)

	revoked, err := blacklist.IsRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NotContains(t, blacklist.jtis, "jti-short")
}

func TestInMemoryTokenBlacklist_NonPositiveTTLIsIgnored(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "jti-expired", 0))
	revoked, err := blacklist.IsRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	blacklist.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := blacklist.IsUserRevoked(ctx, "user-1", now)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.RevokeUser(ctx, "user-1", time.Hour))

	revoked, err = blacklist.IsUserRevoked(ctx, "user-1", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsUserRevoked(ctx, "user-1", now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = blacklist.IsUserRevoked(ctx, "user-2", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)
}
