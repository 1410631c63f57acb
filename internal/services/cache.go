package services

import (
	"context"

	"go.uber.org/zap"
)

// StatsCacheKey is the cache key of the dashboard stats document.
const StatsCacheKey = "dashboard:stats"

// Cache is the subset of the Redis store the services need.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, interface{}) error         { return nil }
func (NoopCache) Delete(context.Context, ...string) error                { return nil }

// invalidator drops cached aggregates after a successful mutation.
type invalidator struct {
	cache Cache
	log   *zap.Logger
}

func (i *invalidator) stats(ctx context.Context) {
	if err := i.cache.Delete(ctx, StatsCacheKey); err != nil {
		i.log.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
