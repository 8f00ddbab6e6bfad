package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	type payload struct {
		Name string `json:"name"`
	}

	require.NoError(t, c.Set(ctx, "key", payload{Name: "value"}, time.Minute))

	var got payload
	found, err := c.Get(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", got.Name)

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "key", "v", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	found, err := c.Get(ctx, "key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	var got int
	found, _ := c.Get(ctx, "a", &got)
	assert.False(t, found)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "book:1", 1, 0))
	require.NoError(t, c.Set(ctx, "book:2", 2, 0))
	require.NoError(t, c.Set(ctx, "author:1", 3, 0))

	require.NoError(t, c.DeletePattern(ctx, "book:*"))

	var got int
	found, _ := c.Get(ctx, "book:1", &got)
	assert.False(t, found)
	found, _ = c.Get(ctx, "author:1", &got)
	assert.True(t, found)
}
