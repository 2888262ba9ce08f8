package mocks

import (
	"context"

	"haunters/shared/cache"
)

type missCache struct{}

func (missCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }

func (missCache) Get(_ context.Context, _ string, _ any) error { return cache.Nil }

func (missCache) Delete(_ context.Context, _ string) error { return nil }

func (missCache) Clear(_ context.Context, _ string) error { return nil }

// NewMissCache returns a cache that always misses and swallows writes, so
// service tests exercise the repository path without a Redis instance.
func NewMissCache() cache.RedisCache {
	return missCache{}
}
