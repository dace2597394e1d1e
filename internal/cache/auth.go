package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/newsroom/newsroom/internal/model"
)

// publisherCachePrefix is the Redis key prefix for verified credentials.
const publisherCachePrefix = "auth:publisher:"

// cachedPublisher is the JSON form stored in Redis.
type cachedPublisher struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// GetPublisher returns the publisher cached under cacheKey.
// A miss or a corrupt entry returns (nil, nil).
func (c *Cache) GetPublisher(ctx context.Context, cacheKey string) (*model.Publisher, error) {
	data, err := c.client.Get(ctx, publisherCachePrefix+cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached publisher: %w", err)
	}

	var cached cachedPublisher
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, nil //nolint:nilerr
	}

	return &model.Publisher{UserID: cached.UserID, Username: cached.Username}, nil
}

// SetPublisher caches a verified publisher under cacheKey.
func (c *Cache) SetPublisher(ctx context.Context, cacheKey string, p *model.Publisher) error {
	data, err := json.Marshal(cachedPublisher{UserID: p.UserID, Username: p.Username})
	if err != nil {
		return fmt.Errorf("marshal publisher: %w", err)
	}
	return c.client.Set(ctx, publisherCachePrefix+cacheKey, data, c.ttl).Err()
}

// DeletePublisher removes a cached credential.
func (c *Cache) DeletePublisher(ctx context.Context, cacheKey string) error {
	return c.client.Del(ctx, publisherCachePrefix+cacheKey).Err()
}
