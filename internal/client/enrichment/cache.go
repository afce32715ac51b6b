package enrichment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/trustvote/internal/client/repositories/metadata"
	"github.com/redis/go-redis/v9"
)

// CachePrefix namespaces enrichment entries in every backend.
const CachePrefix = "bulk_cache_"

// Cache stores generated text by request signature. Entries never expire
// unless the backend is configured with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Clear drops every entry and reports how many there were.
	Clear(ctx context.Context) (int, error)
}

// KVCache keeps entries in the local key/value store.
type KVCache struct {
	repo metadata.Repository
}

func NewKVCache(repo metadata.Repository) *KVCache {
	return &KVCache{repo: repo}
}

func (c *KVCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.repo.Get(ctx, CachePrefix+key)
	if err != nil {
		return "", false, err
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

func (c *KVCache) Set(ctx context.Context, key, value string) error {
	return c.repo.Set(ctx, CachePrefix+key, []byte(value))
}

func (c *KVCache) Clear(ctx context.Context) (int, error) {
	entries, err := c.repo.List(ctx, CachePrefix)
	if err != nil {
		return 0, err
	}
	if err := c.repo.Clear(ctx, CachePrefix); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// RedisCache shares entries between devices through Redis.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to redisURL (redis://host:port/db). A zero ttl keeps
// entries forever.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return &RedisCache{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, CachePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, v != "", nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.rdb.Set(ctx, CachePrefix+key, value, c.ttl).Err()
}

// Clear removes only this cache's keys, so a shared database is safe.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	n := 0
	iter := c.rdb.Scan(ctx, 0, CachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		deleted, err := c.rdb.Del(ctx, iter.Val()).Result()
		if err != nil {
			return n, err
		}
		n += int(deleted)
	}
	return n, iter.Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
