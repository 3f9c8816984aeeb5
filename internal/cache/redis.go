// Package cache provides the optional Redis read-through cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache talks to Redis directly and returns every error it sees.
// Request paths should go through FailOpen instead.
type Cache struct {
	client *redis.Client
}

// Open builds a Cache from a redis:// URL without contacting the server.
// go-redis dials lazily and reconnects on its own, so a Redis that comes up
// later is picked up without a restart.
func Open(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	return &Cache{client: redis.NewClient(opt)}, nil
}

// New opens a Cache and verifies the connection.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	c, err := Open(redisURL)
	if err != nil {
		return nil, err
	}

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return c, nil
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client.
// Use sparingly - prefer adding methods to Cache.
func (c *Cache) Client() *redis.Client {
	return c.client
}
