//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realtyadmin/backend/internal/domain/clearance"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/cache"
	"github.com/realtyadmin/backend/internal/interfaces/http/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var _ middleware.RateCounter = (*cache.RedisRateCounter)(nil)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedis_SharedRateLimiterAcrossInstances(t *testing.T) {
	client := startRedis(t)

	// two limiters over one Redis behave like two API instances
	first := middleware.NewSharedRateLimiter(cache.NewRedisRateCounter(client, "realty:test:"), 10, time.Minute)
	second := middleware.NewSharedRateLimiter(cache.NewRedisRateCounter(client, "realty:test:"), 10, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := range 30 {
		limiter := first
		if i%2 == 1 {
			limiter = second
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("10.0.0.1") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
	assert.Equal(t, 0, first.Remaining("10.0.0.1"))
	assert.Equal(t, 10, second.Remaining("10.0.0.2"))

	ttl, err := client.PTTL(context.Background(), "realty:test:rl:10.0.0.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedis_DraftStoreAndTokenBlacklist(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()

	store := cache.NewRedisStore(client, "realty:test:")
	drafts := cache.NewDraftStore(store, time.Hour)
	departmentID := uuid.New()
	draftID := uuid.NewString()

	_, err := drafts.Get(ctx, draftID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, drafts.Put(ctx, draftID, clearance.EditorState{DepartmentID: departmentID, Saved: []string{}}))
	loaded, err := drafts.Get(ctx, draftID)
	require.NoError(t, err)
	assert.Equal(t, departmentID, loaded.DepartmentID)

	ttl, err := client.PTTL(ctx, "realty:test:draft:"+draftID).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	require.NoError(t, drafts.Delete(ctx, draftID))
	_, err = drafts.Get(ctx, draftID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	blacklist := auth.NewRedisTokenBlacklist(client)
	jti := uuid.NewString()
	require.NoError(t, blacklist.Revoke(ctx, jti, time.Minute))
	revoked, err := blacklist.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}
