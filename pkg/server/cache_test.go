package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalOnlyCache(t *testing.T) *RedisCache {
	t.Helper()
	c := NewRedisCache(RedisConfig{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func localLen(c *RedisCache) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memCache)
}

func TestLocalCacheSweepsExpiredEntries(t *testing.T) {
	c := newLocalOnlyCache(t)
	for i := range 1000 {
		c.setLocal(fmt.Sprintf("listing:%d", i), []byte("[]"), time.Millisecond)
	}
	assert.Equal(t, 1000, localLen(c))

	time.Sleep(10 * time.Millisecond)
	c.setLocal("listing:fresh", []byte("[]"), time.Minute)

	assert.Equal(t, 1, localLen(c))
	_, ok := c.getLocal("listing:fresh")
	assert.True(t, ok)
}

func TestLocalCacheExpiry(t *testing.T) {
	c := newLocalOnlyCache(t)
	c.setLocal("a", []byte(`{"totalHits":1}`), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.getLocal("a")
	assert.False(t, ok)
	assert.Equal(t, 0, localLen(c))
}

func TestLocalCacheTtlIsCapped(t *testing.T) {
	c := newLocalOnlyCache(t)
	c.localTtl = time.Millisecond
	c.setLocal("a", []byte("1"), time.Hour)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.getLocal("a")
	assert.False(t, ok)
}

func TestRedisCacheGetServesLocalCopy(t *testing.T) {
	c := newLocalOnlyCache(t)
	c.setLocal("listing:v1", []byte(`{"products":[],"totalHits":3,"sort":"rating","selected":["Home"]}`), time.Minute)

	var out ListingResponse
	require.NoError(t, c.Get(context.Background(), "listing:v1", &out))
	assert.Equal(t, 3, out.TotalHits)
	assert.Equal(t, []string{"Home"}, out.Selected)
}
