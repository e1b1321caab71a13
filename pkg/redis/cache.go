package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a namespaced byte store over a Redis client.
// Missing keys read as nil without error.
type Cache struct {
	client        redis.UniversalClient
	prefix        string
	scanBatchSize int64
}

// NewCache prefixes every key with prefix.
func NewCache(client redis.UniversalClient, prefix string, cfg Config) *Cache {
	batch := cfg.ScanBatchSize
	if batch <= 0 {
		batch = 1000
	}
	return &Cache{client: client, prefix: prefix, scanBatchSize: batch}
}

func (c *Cache) key(k string) string {
	return c.prefix + k
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val. A zero ttl means no expiration.
func (c *Cache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), val, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Keys lists the cache's keys without the prefix, using SCAN.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", c.scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			keys = append(keys, k[len(c.prefix):])
		}
		if cursor = next; cursor == 0 {
			return keys, nil
		}
	}
}

// Client returns the underlying client.
func (c *Cache) Client() redis.UniversalClient {
	return c.client
}
