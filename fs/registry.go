// Package fs provides the filesystem adapters: docset discovery and
// metadata, the disk cache tier, and project manifest analysis.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Registry = (*Registry)(nil)

// DocSetsDirName is the conventional bundle-container directory name
// used by docset managers.
const DocSetsDirName = "DocSets"

// Registry discovers docset bundles under one or more root paths.
// Inventories go through the injected cache keyed by the canonicalized
// roots, so repeat calls within the TTL never walk the filesystem.
type Registry struct {
	roots    []string
	detector docdex.SchemaDetector
	cache    docdex.Cache
	ttl      time.Duration
}

// NewRegistry creates a Registry over the given roots. The detector
// classifies each bundle's index database at discovery time. cache may
// be nil to disable inventory caching.
func NewRegistry(roots []string, detector docdex.SchemaDetector, cache docdex.Cache) *Registry {
	return &Registry{
		roots:    roots,
		detector: detector,
		cache:    cache,
		ttl:      docdex.DefaultTTL,
	}
}

// Discover returns the docset inventory in deterministic order.
// Returns EDISCOVERY when no bundles exist under any root.
func (r *Registry) Discover(ctx context.Context) ([]*docdex.Docset, error) {
	roots := r.resolveRoots()
	key := rootsKey(roots)

	if r.cache != nil {
		if raw, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			var docsets []*docdex.Docset
			if err := json.Unmarshal(raw, &docsets); err == nil {
				return docsets, nil
			}
		}
	}

	docsets, err := r.walk(ctx, roots)
	if err != nil {
		return nil, err
	}
	docdex.SortDocsets(docsets)

	if len(docsets) == 0 {
		return nil, docdex.Errorf(docdex.EDISCOVERY, "no docsets found under %s", strings.Join(roots, ", "))
	}

	if r.cache != nil {
		if raw, err := json.Marshal(docsets); err == nil {
			_ = r.cache.Put(ctx, key, raw, r.ttl)
		}
	}

	return docsets, nil
}

// resolveRoots canonicalizes the configured roots: ~ expands to the
// home directory, symlinks resolve to their targets, and a root
// pointing at the bundle container itself widens to its parent so
// sibling containers are covered. Canonicalization happens before the
// cache key derives from the result, so aliased configurations share
// one inventory entry. The list is sorted and deduplicated.
func (r *Registry) resolveRoots() []string {
	seen := make(map[string]bool)
	resolved := make([]string, 0, len(r.roots))
	for _, root := range r.roots {
		p := resolveRoot(root)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		resolved = append(resolved, p)
	}
	sort.Strings(resolved)
	return resolved
}

func resolveRoot(root string) string {
	p := expandHome(strings.TrimSpace(root))
	if p == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	if filepath.Base(p) == DocSetsDirName {
		if parent := filepath.Dir(p); parent != p {
			p = parent
		}
	}
	return p
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// DefaultRoot returns the conventional docset location for the current
// user.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Library", "Application Support", "Dash", DocSetsDirName)
}

func (r *Registry) walk(ctx context.Context, roots []string) ([]*docdex.Docset, error) {
	// visited holds canonical real paths so symlink cycles terminate;
	// seen dedups bundles reachable from overlapping roots.
	visited := make(map[string]bool)
	seen := make(map[string]bool)
	var docsets []*docdex.Docset

	for _, root := range roots {
		if err := r.walkDir(ctx, root, visited, seen, &docsets); err != nil {
			return nil, err
		}
	}
	return docsets, nil
}

// walkDir descends dir to arbitrary depth, following directory
// symlinks. Bundles are identified by the .docset suffix on the
// visible name; traversal never descends into a bundle.
func (r *Registry) walkDir(ctx context.Context, dir string, visited, seen map[string]bool, out *[]*docdex.Docset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		// Dangling symlink or a directory that vanished mid-walk.
		return nil
	}
	if visited[real] {
		return nil
	}
	visited[real] = true

	if strings.HasSuffix(filepath.Base(dir), ".docset") {
		if ds := r.loadDocset(ctx, dir, real); ds != nil && !seen[ds.RealPath] {
			seen[ds.RealPath] = true
			*out = append(*out, ds)
		}
		return nil
	}

	entries, err := os.ReadDir(real)
	if err != nil {
		return nil
	}
	for _, de := range entries {
		if !de.IsDir() && de.Type()&os.ModeSymlink == 0 {
			continue
		}
		if err := r.walkDir(ctx, filepath.Join(real, de.Name()), visited, seen, out); err != nil {
			return err
		}
	}
	return nil
}

// loadDocset validates the bundle layout and builds the Docset record.
// Bundles without an index database are ignored. Schema detection
// failures demote to SchemaUnsupported so the bundle stays listed and
// only its queries are skipped.
func (r *Registry) loadDocset(ctx context.Context, path, real string) *docdex.Docset {
	indexPath := filepath.Join(real, "Contents", "Resources", "docSet.dsidx")
	if _, err := os.Stat(indexPath); err != nil {
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(path), ".docset")
	if display := bundleDisplayName(filepath.Join(real, "Contents", "Info.plist")); display != "" {
		name = display
	}

	ds := &docdex.Docset{
		Name:         name,
		Path:         path,
		RealPath:     real,
		Schema:       docdex.SchemaUnsupported,
		IndexPath:    indexPath,
		Category:     filepath.Base(filepath.Dir(real)),
		DiscoveredAt: time.Now().UTC(),
	}

	documents := filepath.Join(real, "Contents", "Resources", "Documents")
	if info, err := os.Stat(documents); err == nil && info.IsDir() {
		ds.DocumentsPath = documents
	}

	if r.detector != nil {
		if kind, err := r.detector.DetectSchema(ctx, indexPath); err == nil {
			ds.Schema = kind
		}
	}

	return ds
}

// rootsKey derives the inventory cache key from the canonicalized
// roots, so configurations resolving to the same real directories share
// one cache entry.
func rootsKey(roots []string) string {
	return fmt.Sprintf("docsets-%x", xxhash.Sum64String(strings.Join(roots, "\x00")))
}
