package mock

import (
	"context"
	"time"

	"github.com/docdex/docdex"
)

var _ docdex.Cache = (*Cache)(nil)

// Cache is a mock implementation of docdex.Cache.
type Cache struct {
	GetFn           func(ctx context.Context, key string) ([]byte, bool, error)
	PutFn           func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	InvalidateFn    func(ctx context.Context, key string) error
	InvalidateAllFn func(ctx context.Context) error
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.PutFn(ctx, key, value, ttl)
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.InvalidateFn(ctx, key)
}

func (c *Cache) InvalidateAll(ctx context.Context) error {
	return c.InvalidateAllFn(ctx)
}
