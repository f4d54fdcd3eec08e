package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/cache"
)

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := cache.New[string, int](2)
	c.Set("0xaaa", 1)
	c.Set("0xbbb", 2)

	// touch 0xaaa so 0xbbb becomes the eviction candidate
	_, ok := c.Get("0xaaa")
	require.True(t, ok)

	c.Set("0xccc", 3)

	_, ok = c.Get("0xbbb")
	assert.False(t, ok)
	v, ok := c.Get("0xaaa")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestCache_PanicsOnInvalidSize(t *testing.T) {
	assert.Panics(t, func() { cache.New[string, int](0) })
}

func TestTTLCache_Expires(t *testing.T) {
	c := cache.NewTTL[string, string](8, 20*time.Millisecond)
	c.Set("templates", "cached")

	v, ok := c.Get("templates")
	require.True(t, ok)
	assert.Equal(t, "cached", v)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("templates")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestTTLCache_Remove(t *testing.T) {
	c := cache.NewTTL[string, int](8, time.Minute)
	c.Set("k", 1)
	c.Remove("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}
