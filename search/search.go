// Package search provides query orchestration over the docset
// inventory. It composes discovery, index lookups, ranking, caching,
// and content extraction behind the docdex.Searcher interface.
package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/docdex/docdex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many docset indexes one search queries
// in parallel.
const DefaultConcurrency = 4

// Compile-time interface verification.
var _ docdex.Searcher = (*Searcher)(nil)

// Searcher orchestrates the search pipeline over discovered docsets.
type Searcher struct {
	Registry docdex.Registry
	Index    docdex.Index
	Ranker   docdex.Ranker
	Contents docdex.ContentService
	Cache    docdex.Cache

	// Concurrency bounds parallel docset queries. Non-positive means
	// DefaultConcurrency.
	Concurrency int

	// TTL is the lifetime of cached responses. Non-positive means
	// docdex.DefaultTTL.
	TTL time.Duration
}

// Search runs the full pipeline for one request: cache lookup,
// discovery, bounded parallel index queries, ranking, and optional
// content enrichment. Per-docset failures degrade to Skipped entries.
func (s *Searcher) Search(ctx context.Context, req docdex.SearchRequest) (*docdex.SearchResponse, error) {
	begin := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := requestKey(req)
	if s.Cache != nil && !req.IncludeContent {
		if resp, ok := s.cachedResponse(ctx, key); ok {
			resp.CacheHit = true
			resp.Elapsed = time.Since(begin)
			return resp, nil
		}
	}

	docsets, err := s.inventory(ctx)
	if err != nil {
		return nil, err
	}
	if req.Docset != "" {
		docsets = filterDocsets(docsets, req.Docset)
	}

	results, skipped, err := s.searchDocsets(ctx, docsets, req)
	if err != nil {
		return nil, err
	}

	docdex.SortResults(results)
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	if req.IncludeContent {
		s.attachContent(ctx, docsets, results)
	}

	resp := &docdex.SearchResponse{Results: results, Skipped: skipped}
	if s.Cache != nil && !req.IncludeContent {
		s.storeResponse(ctx, key, resp)
	}

	resp.Elapsed = time.Since(begin)
	return resp, nil
}

// Docsets returns the discovered inventory.
func (s *Searcher) Docsets(ctx context.Context) ([]*docdex.Docset, error) {
	return s.Registry.Discover(ctx)
}

// Content loads and normalizes one document from a named docset.
func (s *Searcher) Content(ctx context.Context, docset, relPath string) (string, error) {
	if s.Contents == nil {
		return "", docdex.Errorf(docdex.EUNAVAILABLE, "content loading is not configured")
	}

	docsets, err := s.inventory(ctx)
	if err != nil {
		return "", err
	}
	found := docdex.FindDocset(docsets, docset)
	if found == nil {
		return "", docdex.Errorf(docdex.ENOTFOUND, "docset %q is not installed", docset)
	}
	return s.Contents.Content(ctx, found, relPath)
}

// InvalidateCache removes one cached entry, or every entry when key is
// empty.
func (s *Searcher) InvalidateCache(ctx context.Context, key string) error {
	if s.Cache == nil {
		return nil
	}
	if strings.TrimSpace(key) == "" {
		return s.Cache.InvalidateAll(ctx)
	}
	return s.Cache.Invalidate(ctx, key)
}

// inventory returns the discovered docsets, degrading an empty
// inventory to zero docsets instead of a failure.
func (s *Searcher) inventory(ctx context.Context) ([]*docdex.Docset, error) {
	docsets, err := s.Registry.Discover(ctx)
	if err != nil {
		if docdex.ErrorCode(err) == docdex.EDISCOVERY {
			return nil, nil
		}
		return nil, err
	}
	return docsets, nil
}

// docsetOutcome holds the result of querying a single docset.
type docsetOutcome struct {
	docset  string
	results []docdex.SearchResult
	err     error
}

// searchDocsets queries every docset in parallel and merges the
// outcomes in inventory order, so equal inputs produce equal output.
func (s *Searcher) searchDocsets(ctx context.Context, docsets []*docdex.Docset, req docdex.SearchRequest) ([]docdex.SearchResult, []docdex.SkippedDocset, error) {
	if len(docsets) == 0 {
		return nil, nil, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]docsetOutcome, len(docsets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, ds := range docsets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.searchDocset(gctx, ds, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var results []docdex.SearchResult
	var skipped []docdex.SkippedDocset
	for _, out := range outcomes {
		if out.err != nil {
			skipped = append(skipped, docdex.SkippedDocset{
				Docset: out.docset,
				Reason: docdex.ErrorMessage(out.err),
			})
			continue
		}
		results = append(results, out.results...)
	}
	return results, skipped, nil
}

// searchDocset queries and ranks one docset. Failures travel in the
// outcome so one bad bundle never aborts the whole search.
func (s *Searcher) searchDocset(ctx context.Context, docset *docdex.Docset, req docdex.SearchRequest) docsetOutcome {
	out := docsetOutcome{docset: docset.Name}

	entries, err := s.Index.Entries(ctx, docset, req.Term, req.Limit)
	if err != nil {
		out.err = err
		return out
	}

	if req.Exact {
		out.results = docdex.RankExact(req.Term, entries, req.Threshold, req.Limit)
	} else {
		out.results = s.Ranker.Rank(req.Term, entries, req.Threshold, req.Limit)
	}
	return out
}

// attachContent loads page text for each result in place. Extraction
// failures leave the snippet empty.
func (s *Searcher) attachContent(ctx context.Context, docsets []*docdex.Docset, results []docdex.SearchResult) {
	if s.Contents == nil {
		return
	}
	for i := range results {
		docset := docdex.FindDocset(docsets, results[i].Entry.Docset)
		if docset == nil {
			continue
		}
		text, err := s.Contents.Content(ctx, docset, results[i].Entry.Path)
		if err != nil {
			continue
		}
		results[i].Snippet = text
	}
}

func (s *Searcher) cachedResponse(ctx context.Context, key string) (*docdex.SearchResponse, bool) {
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var resp docdex.SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// storeResponse caches a fully computed response; write failures are
// ignored.
func (s *Searcher) storeResponse(ctx context.Context, key string, resp *docdex.SearchResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = docdex.DefaultTTL
	}
	_ = s.Cache.Put(ctx, key, raw, ttl)
}

// filterDocsets restricts the inventory to docsets matching name,
// preferring exact case-insensitive matches over substring matches. An
// unknown name yields an empty slice, never an error.
func filterDocsets(docsets []*docdex.Docset, name string) []*docdex.Docset {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return docsets
	}

	var exact, partial []*docdex.Docset
	for _, ds := range docsets {
		switch n := strings.ToLower(ds.Name); {
		case n == needle:
			exact = append(exact, ds)
		case strings.Contains(n, needle):
			partial = append(partial, ds)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return partial
}
