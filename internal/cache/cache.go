// Package cache provides a Redis-backed result cache for expensive
// operations (LLM parses, PDF renders). When no Redis URL is configured the
// cache degrades to a no-op and every lookup misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "adaptive_cv"

const (
	// ParsedTTL bounds how long a parsed resume stays cached.
	ParsedTTL = 24 * time.Hour
	// ArtifactTTL bounds how long a rendered PDF stays cached.
	ArtifactTTL = 6 * time.Hour
)

// Cache wraps a Redis client with namespaced keys and hit/miss counters.
type Cache struct {
	client *redis.Client
	hits   atomic.Int64
	misses atomic.Int64
}

// New connects to Redis at redisURL. An empty URL yields a disabled cache.
func New(redisURL string) (*Cache, error) {
	if strings.TrimSpace(redisURL) == "" {
		return &Cache{}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// NewWithClient wraps an existing Redis client. Used in tests.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis backend is configured.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Key builds a namespaced cache key from a section name and the SHA-256 of
// the given parts.
func Key(section string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%s:%s", keyPrefix, section, hex.EncodeToString(h.Sum(nil)))
}

// Get returns the cached payload for key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return data, true
}

// Set stores the payload under key with the given TTL. Failures are ignored;
// the cache is an optimization, not a source of truth.
func (c *Cache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, ttl).Err()
}

// Stats describes the current cache state.
type Stats struct {
	Enabled bool  `json:"enabled"`
	Keys    int64 `json:"keys"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Stats returns counters and the number of namespaced keys currently stored.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{
		Enabled: c.client != nil,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
	if c.client == nil {
		return stats, nil
	}
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.Keys = int64(len(keys))
	return stats, nil
}

// Clear removes every namespaced key. Returns the number of keys removed.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	removed, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis del: %w", err)
	}
	return removed, nil
}

func (c *Cache) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, keyPrefix+":*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
