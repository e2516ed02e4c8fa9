package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ProbeCache caches webhook reachability probe results for a short TTL so
// the settings surface does not hammer endpoints. Keys are hashed URLs.
type ProbeCache struct {
	client *goredis.Client
	prefix string
}

// NewProbeCache creates a new Redis-backed probe cache.
func NewProbeCache(client *goredis.Client) *ProbeCache {
	return &ProbeCache{
		client: client,
		prefix: "probe:",
	}
}

// Get returns whether a cached result exists for the URL and, if so, whether
// the endpoint was reachable.
func (c *ProbeCache) Get(ctx context.Context, url string) (bool, bool, error) {
	val, err := c.client.Get(ctx, c.key(url)).Result()
	if err != nil {
		if err == goredis.Nil {
			return false, false, nil
		}
		return false, false, fmt.Errorf("redis probe get: %w", err)
	}
	return true, val == "1", nil
}

// Set stores a probe result with TTL.
func (c *ProbeCache) Set(ctx context.Context, url string, reachable bool, ttl time.Duration) error {
	val := "0"
	if reachable {
		val = "1"
	}
	if err := c.client.Set(ctx, c.key(url), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis probe set: %w", err)
	}
	return nil
}

func (c *ProbeCache) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return c.prefix + hex.EncodeToString(sum[:])
}
