package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries as plain keys and remembers, per tag, the set
// of keys carrying it.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "sp"
	}
	return &RedisCache{rdb: rdb, prefix: prefix}
}

func (c *RedisCache) entryKey(key string) string {
	return fmt.Sprintf("%s:cache:%s", c.prefix, key)
}

func (c *RedisCache) tagKey(tag string) string {
	return fmt.Sprintf("%s:tag:%s", c.prefix, tag)
}

// Get returns the cached body for key, if present.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores val under key and registers the key with every tag.
func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		return nil
	}
	ek := c.entryKey(key)
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, ek, val, ttl)
	for _, tag := range tags {
		tk := c.tagKey(tag)
		pipe.SAdd(ctx, tk, ek)
		// tag sets outlive their members so a late invalidation still finds them
		pipe.Expire(ctx, tk, 2*ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate deletes every entry registered with any of the tags.
func (c *RedisCache) Invalidate(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		tk := c.tagKey(tag)
		members, err := c.rdb.SMembers(ctx, tk).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		keys := append(members, tk)
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}
