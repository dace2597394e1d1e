// Package cache keeps verified publisher credentials in Redis so repeated
// publishes skip the password hash.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when Options.TTL is zero.
const DefaultTTL = 5 * time.Minute

// Options tunes the client built by New.
type Options struct {
	// TTL bounds how long a verified credential is trusted without a
	// fresh hash check. A revoked publisher keeps access for at most TTL.
	TTL      time.Duration
	PoolSize int
}

// Cache is a Redis-backed credential cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redisURL and verifies the connection with a PING.
func New(ctx context.Context, redisURL string, opts Options) (*Cache, error) {
	ro, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.PoolSize > 0 {
		ro.PoolSize = opts.PoolSize
	}
	ro.MinIdleConns = 1
	ro.PoolTimeout = 2 * time.Second
	ro.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(ro)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, opts.TTL), nil
}

// NewWithClient wraps an existing client. ttl <= 0 means DefaultTTL.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Ping reports whether Redis answers; it backs the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
