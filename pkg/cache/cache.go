package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pandamarket/backend/pkg/logger"
)

// DefaultTTL is applied when Set is called with a zero TTL.
const DefaultTTL = 5 * time.Minute

// Cache is a thin Redis wrapper for caching rendered JSON responses.
// A nil *Cache is valid and turns every operation into a no-op, so callers
// never need to branch on whether caching is configured.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and returns a Cache. It returns an error when the
// server cannot be reached; callers may treat that as "run without cache".
func New(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Logger.Info().Str("addr", addr).Msg("Redis cache connected")
	return &Cache{client: client}, nil
}

// Get returns the cached bytes for key, or nil on a miss.
func (c *Cache) Get(ctx context.Context, key string) []byte {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache set failed")
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Cache delete failed")
	}
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
