package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps worker bookkeeping: which digest periods were already
// produced and the last generated sitemap.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func publishedKey(channel, period string) string {
	return fmt.Sprintf("sp:published:%s:%s", channel, period)
}

func sitemapKey() string {
	return "sp:sitemap:xml"
}

func (s *RedisStore) IsPublished(ctx context.Context, channel, period string) (bool, error) {
	res, err := s.rdb.Get(ctx, publishedKey(channel, period)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == "1", nil
}

func (s *RedisStore) MarkPublished(ctx context.Context, channel, period string) error {
	return s.rdb.Set(ctx, publishedKey(channel, period), "1", 30*24*time.Hour).Err()
}

// SaveSitemap stores the rendered sitemap for other instances to serve.
func (s *RedisStore) SaveSitemap(ctx context.Context, xml []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, sitemapKey(), xml, ttl).Err()
}

// LoadSitemap returns the stored sitemap, or nil if none is stored.
func (s *RedisStore) LoadSitemap(ctx context.Context) ([]byte, error) {
	b, err := s.rdb.Get(ctx, sitemapKey()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return b, err
}
