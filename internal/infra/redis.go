package infra

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates and validates a go-redis client connection.
// An empty URL returns a nil client: the cache is optional.
func NewRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

const dashboardKeyPrefix = "epicontrol:dashboard:"

// RedisDashboardCache stores serialized dashboard summaries for a short TTL.
// Calls go through a circuit breaker; while it is open every Get is a miss
// and every Set is skipped.
type RedisDashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
	cb  *CircuitBreaker
}

func NewRedisDashboardCache(rdb *redis.Client, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{rdb: rdb, ttl: ttl, cb: NewCircuitBreaker(DefaultCBConfig())}
}

// Get returns the cached payload. Redis failures count as a miss.
func (c *RedisDashboardCache) Get(ctx context.Context, key string) ([]byte, bool) {
	var data []byte
	err := c.cb.Execute(func() error {
		var err error
		data, err = c.rdb.Get(ctx, dashboardKeyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrCircuitOpen) {
			log.Warn().Err(err).Str("key", key).Msg("cache do dashboard: falha na leitura")
		}
		return nil, false
	}
	return data, data != nil
}

func (c *RedisDashboardCache) Set(ctx context.Context, key string, data []byte) {
	err := c.cb.Execute(func() error {
		return c.rdb.Set(ctx, dashboardKeyPrefix+key, data, c.ttl).Err()
	})
	if err != nil && !errors.Is(err, ErrCircuitOpen) {
		log.Warn().Err(err).Str("key", key).Msg("cache do dashboard: falha na escrita")
	}
}

