package server

import (
	"context"
	"time"
)

type CacheHelper[T any] struct {
	Cache Cache
}

func NewCacheHelper[T any](cache Cache) *CacheHelper[T] {
	return &CacheHelper[T]{Cache: cache}
}

// Handle fills out from the cache, or from fn on a miss. A nil cache always
// calls fn. Failing to store the fresh value is returned but out is valid.
func (c *CacheHelper[T]) Handle(ctx context.Context, key string, out *T, fn func() T, expiration time.Duration) (bool, error) {
	if c == nil || c.Cache == nil {
		*out = fn()
		return false, nil
	}
	if err := c.Cache.Get(ctx, key, out); err == nil {
		return true, nil
	}
	*out = fn()
	return false, c.Cache.Set(ctx, key, out, expiration)
}
