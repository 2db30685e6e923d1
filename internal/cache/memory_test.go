package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_InvalidateByTag(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "/posts", []byte("p"), time.Minute, "Post"))
	require.NoError(t, m.Set(ctx, "/countries", []byte("c"), time.Minute, "Post", "Country"))
	require.NoError(t, m.Set(ctx, "/jobs", []byte("j"), time.Minute, "Job"))

	require.NoError(t, m.Invalidate(ctx, "Country"))

	_, ok, _ := m.Get(ctx, "/countries")
	assert.False(t, ok)
	v, ok, _ := m.Get(ctx, "/posts")
	assert.True(t, ok)
	assert.Equal(t, "p", string(v))

	require.NoError(t, m.Invalidate(ctx, "Post"))
	_, ok, _ = m.Get(ctx, "/posts")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "/jobs")
	assert.True(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_ZeroTTLSkips(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0, "Post"))
	_, ok, _ := m.Get(ctx, "k")
	assert.False(t, ok)
}
