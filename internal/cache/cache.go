// Package cache keeps API read responses and drops them by tag when a
// mutation touches the same resource family.
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bodies under a key with a set of tags.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}

// Nop never stores anything. Used when Redis is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte, time.Duration, ...string) error { return nil }

func (Nop) Invalidate(context.Context, ...string) error { return nil }
