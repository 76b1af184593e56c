package services

import (
	"context"
	"time"
)

// CacheService is the narrow cache surface repositories and services use.
// *cache.RedisCache satisfies it; NoopCache stands in when Redis is absent
// so a cache outage never takes reads down.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

// Cache key layout.
const (
	CacheKeyPopularCars = "cars:popular"
	CacheKeyCarPrefix   = "cars:id:"
)

type NoopCache struct{}

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cacheMissError{}
}

func (NoopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (NoopCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (NoopCache) Ping(ctx context.Context) error {
	return nil
}
