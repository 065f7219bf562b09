// Package lru provides the in-memory cache tier, a bounded
// least-recently-used map with lazy per-entry expiry.
package lru

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Cache = (*Cache)(nil)

// DefaultSize bounds the number of resident entries.
const DefaultSize = 512

// entry pairs a value with its expiry instant. Eviction is the LRU's
// business; expiry is checked lazily on read.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is the in-memory cache tier. All methods are safe for
// concurrent use.
type Cache struct {
	entries *lru.Cache[string, entry]
}

// NewCache creates a memory cache holding at most size entries.
// Non-positive sizes use DefaultSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, entry](size)
	if err != nil {
		// New only fails for non-positive sizes.
		entries, _ = lru.New[string, entry](DefaultSize)
	}
	return &Cache{entries: entries}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = docdex.DefaultTTL
	}
	c.entries.Add(key, entry{value: value, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

func (c *Cache) InvalidateAll(ctx context.Context) error {
	c.entries.Purge()
	return nil
}

// Len reports the number of resident entries, expired or not.
func (c *Cache) Len() int { return c.entries.Len() }
