package cache

import (
	"context"
	"time"

	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix     = "realty:"
	sweepInterval = 5 * time.Minute
)

// Backend bundles the selected store with the Redis client it runs on.
// Client is nil when the in-memory store is used.
type Backend struct {
	Store  Store
	Client *redis.Client
	closer func() error
}

// IsRedis reports whether the backend is shared Redis
func (b *Backend) IsRedis() bool {
	return b.Client != nil
}

// Close releases the Redis connection or stops the memory sweep
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// Open returns a Redis backed store when Redis is enabled and reachable.
// Otherwise it falls back to a memory store, unless the environment is
// production where an unreachable Redis is an error.
func Open(ctx context.Context, cfg config.RedisConfig, production bool, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Enabled {
		client, err := NewRedisClient(ctx, cfg)
		if err == nil {
			logger.Info("Using Redis key-value store", zap.String("addr", cfg.Addr()))
			return &Backend{
				Store:  NewRedisStore(client, keyPrefix),
				Client: client,
				closer: client.Close,
			}, nil
		}
		if production {
			return nil, err
		}
		logger.Warn("Redis unavailable, falling back to in-memory store", zap.Error(err))
	} else {
		logger.Info("Redis disabled, using in-memory key-value store")
	}

	mem := NewMemoryStore(sweepInterval)
	return &Backend{Store: mem, closer: mem.Close}, nil
}
