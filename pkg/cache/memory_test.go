package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	type page struct {
		IDs []string `json:"ids"`
	}
	require.NoError(t, c.Set(ctx, "posts:feed:1", page{IDs: []string{"a", "b"}}, time.Minute))

	var got page
	found, err := c.Get(ctx, "posts:feed:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got.IDs)

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))
	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)

	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheIncrementAndPattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	n, err := c.Increment(ctx, "signin:fail:a@b.c")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, _ = c.Increment(ctx, "signin:fail:a@b.c")
	assert.Equal(t, int64(2), n)

	_ = c.Set(ctx, "posts:feed:all:1", 1, 0)
	_ = c.Set(ctx, "posts:feed:tech:1", 1, 0)
	_ = c.Set(ctx, "categories:list", 1, 0)

	require.NoError(t, c.DeletePattern(ctx, "posts:feed:*"))

	ok, _ := c.Exists(ctx, "posts:feed:all:1")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "categories:list")
	assert.True(t, ok)
}

func TestMemoryCacheDeletePatternMatchesLikeRedis(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	// Category "CI/CD" nằm trong feed key
	_ = c.Set(ctx, "posts:feed:CI/CD:1:10", 1, 0)
	_ = c.Set(ctx, "posts:feed::1:10", 1, 0)
	_ = c.Set(ctx, "posts:feedback", 1, 0)
	_ = c.Set(ctx, "user:a.b", 1, 0)
	_ = c.Set(ctx, "user:axb", 1, 0)

	require.NoError(t, c.DeletePattern(ctx, "posts:feed:*"))
	ok, _ := c.Exists(ctx, "posts:feed:CI/CD:1:10")
	assert.False(t, ok, "* must match across /")
	ok, _ = c.Exists(ctx, "posts:feed::1:10")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "posts:feedback")
	assert.True(t, ok)

	// "." là ký tự thường, không phải regexp wildcard
	require.NoError(t, c.DeletePattern(ctx, "user:a.b"))
	ok, _ = c.Exists(ctx, "user:axb")
	assert.True(t, ok)

	require.NoError(t, c.DeletePattern(ctx, "user:a[xy]?"))
	ok, _ = c.Exists(ctx, "user:axb")
	assert.False(t, ok)
}
