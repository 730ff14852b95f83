// Package cache provides Redis access for rate limiting and scan debounce.
// Attendance data itself is never cached: presence is always computed from
// the live event log.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keyspace. Every key is prefix + hashKey(identifier); raw badge UIDs
// and terminal IPs never land in Redis.
const (
	// scanDebouncePrefix marks cards seen inside the debounce window.
	scanDebouncePrefix = "scan:debounce:"
	// rateLimitScanPrefix holds per-terminal token buckets for scans.
	rateLimitScanPrefix = "ratelimit:scan:"
)

// hashKey returns the first 8 bytes of SHA256(s) as 16 hex characters.
func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

// Cache provides Redis access methods.
type Cache struct {
	client *redis.Client
}

// New creates a new Cache with a Redis client.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute
	opt.ClientName = "punchdeck"

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity. Readiness probes call this; a failure flips
// /readyz to unhealthy but scans keep working because debounce and rate
// limiting both fail open.
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
