package server

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

// Cache stores encoded responses. Listing keys carry the content version of
// the catalog, see cacheKey.
type Cache interface {
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type localEntry struct {
	Expires time.Time
	Data    []byte
}

// RedisCache keeps a short lived local copy in front of redis.
type RedisCache struct {
	client   *redis.Client
	mu       sync.RWMutex
	memCache map[string]localEntry
	localTtl time.Duration
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_URL"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func NewRedisCache(cfg RedisConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisCache{client: rdb, memCache: make(map[string]localEntry), localTtl: time.Minute}
}

func (c *RedisCache) getLocal(key string) ([]byte, bool) {
	c.mu.RLock()
	local, found := c.memCache[key]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}
	if local.Expires.Before(time.Now()) {
		c.mu.Lock()
		delete(c.memCache, key)
		c.mu.Unlock()
		return nil, false
	}
	return local.Data, true
}

// setLocal also drops every expired entry, keys of old catalog versions are
// never read again.
func (c *RedisCache) setLocal(key string, data []byte, expiration time.Duration) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, local := range c.memCache {
		if local.Expires.Before(now) {
			delete(c.memCache, k)
		}
	}
	c.memCache[key] = localEntry{Expires: now.Add(min(expiration, c.localTtl)), Data: data}
}

func (c *RedisCache) Get(ctx context.Context, key string, out any) error {
	if data, ok := c.getLocal(key); ok {
		return jsoncompat.Unmarshal(data, out)
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err = jsoncompat.Unmarshal(data, out); err != nil {
		return err
	}
	c.setLocal(key, data, c.localTtl)
	return nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	c.setLocal(key, data, expiration)
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
