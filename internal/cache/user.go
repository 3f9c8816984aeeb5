package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usersvc/usersvc/internal/model"
)

const userKeyPrefix = "user:"

// UserTTL is how long a cached user lives. Entries are never invalidated,
// so this is also the upper bound on staleness.
const UserTTL = 3600 * time.Second

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// UserKey returns the cache key for a user id.
func UserKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

// GetUser reads a cached user.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	data, err := c.client.Get(ctx, UserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}

	return &user, nil
}

// SetUser stores the full user record under user:<id>.
func (c *Cache) SetUser(ctx context.Context, user *model.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	if err := c.client.SetEx(ctx, UserKey(user.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}
