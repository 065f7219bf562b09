package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Cache = (*Cache)(nil)

// Cache is the disk cache tier. Each entry lives as a <key>.json file
// under dir and survives process restarts. Expiry is lazy: a read past
// the entry's TTL counts as a miss and removes the stale file.
type Cache struct {
	dir string
}

// NewCache creates a disk cache rooted at dir, creating the directory
// if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, docdex.Errorf(docdex.ECACHE, "cannot create cache directory %q: %v", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the directory holding the cache entries.
func (c *Cache) Dir() string { return c.dir }

// entry is the on-disk envelope. Timestamp is the unix second of the
// write and TTL the lifetime in seconds.
type entry struct {
	Data      []byte `json:"data"`
	Timestamp int64  `json:"timestamp"`
	TTL       int64  `json:"ttl"`
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	path := c.entryPath(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, docdex.Errorf(docdex.ECACHE, "reading cache entry: %v", err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry is a miss; remove it so it cannot keep
		// shadowing future writes.
		_ = os.Remove(path)
		return nil, false, nil
	}

	ttl := time.Duration(e.TTL) * time.Second
	if ttl <= 0 {
		ttl = docdex.DefaultTTL
	}
	if time.Since(time.Unix(e.Timestamp, 0)) > ttl {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = docdex.DefaultTTL
	}

	raw, err := json.Marshal(entry{
		Data:      value,
		Timestamp: time.Now().Unix(),
		TTL:       int64(ttl / time.Second),
	})
	if err != nil {
		return docdex.Errorf(docdex.ECACHE, "encoding cache entry: %v", err)
	}

	// Write to a temp file in the same directory, then rename over the
	// final path, so a concurrent reader never sees a partial entry.
	tmp, err := os.CreateTemp(c.dir, "put-*.tmp")
	if err != nil {
		return docdex.Errorf(docdex.ECACHE, "creating cache entry: %v", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return docdex.Errorf(docdex.ECACHE, "writing cache entry: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return docdex.Errorf(docdex.ECACHE, "writing cache entry: %v", err)
	}
	if err := os.Rename(tmpName, c.entryPath(key)); err != nil {
		os.Remove(tmpName)
		return docdex.Errorf(docdex.ECACHE, "storing cache entry: %v", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.entryPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return docdex.Errorf(docdex.ECACHE, "removing cache entry: %v", err)
	}
	return nil
}

func (c *Cache) InvalidateAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return docdex.Errorf(docdex.ECACHE, "listing cache directory: %v", err)
	}

	var errs []error
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if !strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".tmp") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return docdex.Errorf(docdex.ECACHE, "clearing cache: %v", errors.Join(errs...))
	}
	return nil
}

// entryPath maps a key to its file. Base strips any path separators a
// malformed key could smuggle in.
func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, filepath.Base(key)+".json")
}
