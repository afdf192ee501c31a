package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a single key/value scope inside a Cache.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Cache hands out isolated scopes, one per browser.
type Cache interface {
	Scope(id string) Store
	Ping(ctx context.Context) error
	Close() error
}

type redisCache struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
}

// NewRedisCache returns a Cache whose keys live under serviceName. A zero ttl
// keeps keys forever; otherwise every write refreshes the expiry.
func NewRedisCache(addr, serviceName string, ttl time.Duration) Cache {
	return newRedisCache(redis.NewClient(&redis.Options{Addr: addr}), serviceName, ttl)
}

func newRedisCache(client *redis.Client, serviceName string, ttl time.Duration) *redisCache {
	return &redisCache{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

func (r *redisCache) Scope(id string) Store {
	return redisScope{cache: r, id: id}
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

func (r *redisCache) GenerateKey(scope, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.serviceName, scope, key)
}

type redisScope struct {
	cache *redisCache
	id    string
}

func (s redisScope) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.cache.client.Get(ctx, s.cache.GenerateKey(s.id, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: get %q: %w", key, err)
	}
	return val, true, nil
}

func (s redisScope) Set(ctx context.Context, key, value string) error {
	if err := s.cache.client.Set(ctx, s.cache.GenerateKey(s.id, key), value, s.cache.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %q: %w", key, err)
	}
	return nil
}

func (s redisScope) Remove(ctx context.Context, key string) error {
	if err := s.cache.client.Del(ctx, s.cache.GenerateKey(s.id, key)).Err(); err != nil {
		return fmt.Errorf("cache: remove %q: %w", key, err)
	}
	return nil
}
