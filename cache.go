package docdex

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the cache entry lifetime applied when a caller does not
// choose one.
const DefaultTTL = time.Hour

// Cache stores serialized query results by key. Implementations treat
// expired, missing and unreadable entries uniformly as misses; only
// infrastructure faults surface as errors, and callers degrade those to
// misses too.
type Cache interface {
	// Get returns the cached value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key for ttl. A non-positive ttl means
	// DefaultTTL.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes a single entry. Removing an absent key is not
	// an error.
	Invalidate(ctx context.Context, key string) error

	// InvalidateAll removes every entry.
	InvalidateAll(ctx context.Context) error
}

// Compile-time interface verification.
var _ Cache = (*TieredCache)(nil)

// TieredCache composes caches so earlier tiers mask later ones: the
// memory tier is checked before the disk tier, and a hit in a later
// tier backfills the earlier ones. After a restart a disk hit therefore
// repopulates the empty memory tier.
type TieredCache struct {
	Tiers []Cache

	// TTL applies when promoting a late-tier hit into earlier tiers.
	TTL time.Duration
}

// NewTieredCache composes the given tiers in lookup order.
func NewTieredCache(tiers ...Cache) *TieredCache {
	return &TieredCache{Tiers: tiers, TTL: DefaultTTL}
}

// Get checks tiers in order. Tier errors count as misses so a corrupt
// disk entry never fails a query.
func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	for i, tier := range c.Tiers {
		value, ok, err := tier.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		for _, earlier := range c.Tiers[:i] {
			_ = earlier.Put(ctx, key, value, c.TTL)
		}
		return value, true, nil
	}
	return nil, false, nil
}

// Put writes through to every tier.
func (c *TieredCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var errs []error
	for _, tier := range c.Tiers {
		if err := tier.Put(ctx, key, value, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Invalidate removes key from every tier.
func (c *TieredCache) Invalidate(ctx context.Context, key string) error {
	var errs []error
	for _, tier := range c.Tiers {
		if err := tier.Invalidate(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InvalidateAll clears every tier.
func (c *TieredCache) InvalidateAll(ctx context.Context) error {
	var errs []error
	for _, tier := range c.Tiers {
		if err := tier.InvalidateAll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
