package docdex

import (
	"context"
	"time"
)

// IndexEntry is a single row from a docset's search index. Entries are
// constructed per query and never outlive it.
type IndexEntry struct {
	Docset string `json:"docset"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Path   string `json:"path"`
	Anchor string `json:"anchor,omitempty"`
}

// SearchResult pairs an index entry with its ranking score.
type SearchResult struct {
	Entry IndexEntry `json:"entry"`

	// Score is the ranking score in [0,100].
	Score int `json:"score"`

	// Snippet is extracted page content, present only when the request
	// asked for content and extraction succeeded.
	Snippet string `json:"snippet,omitempty"`
}

// SkippedDocset records a docset excluded from a search and why.
// Per-docset failures degrade to these diagnostics instead of aborting
// the whole search.
type SkippedDocset struct {
	Docset string `json:"docset"`
	Reason string `json:"reason"`
}

// SearchRequest describes one search over the docset inventory.
type SearchRequest struct {
	// Term is the free-text query. Must pass ValidateTerm.
	Term string `json:"term"`

	// Docset restricts the search to a single docset by name,
	// case-insensitively. Empty searches every docset.
	Docset string `json:"docset,omitempty"`

	// Limit caps the result count, clamped to [MinLimit, MaxLimit].
	// The zero value selects DefaultLimit.
	Limit int `json:"limit,omitempty"`

	// Threshold discards results scoring below it, clamped to
	// [MinThreshold, MaxThreshold]. The zero value selects
	// DefaultThreshold.
	Threshold int `json:"threshold,omitempty"`

	// IncludeContent attaches an extracted text snippet to each result.
	// Content-bearing responses bypass the cache in both directions.
	IncludeContent bool `json:"includeContent,omitempty"`

	// Exact selects the heuristic exact-match ranker instead of fuzzy
	// scoring.
	Exact bool `json:"exact,omitempty"`
}

// Normalize applies parameter defaults and clamping in place.
func (r *SearchRequest) Normalize() {
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	r.Limit = ClampLimit(r.Limit)
	if r.Threshold == 0 {
		r.Threshold = DefaultThreshold
	}
	r.Threshold = ClampThreshold(r.Threshold)
}

// Validate returns an error if the request cannot be served.
// It is the cheap pre-check run before any I/O.
func (r *SearchRequest) Validate() error {
	return ValidateTerm(r.Term)
}

// SearchResponse is the outcome of one search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`

	// Skipped lists docsets that failed during this search.
	Skipped []SkippedDocset `json:"skipped,omitempty"`

	// CacheHit reports whether the response was served from a cache
	// tier without recomputation.
	CacheHit bool `json:"cacheHit"`

	Elapsed time.Duration `json:"elapsed"`
}

// Index queries a docset's embedded index database.
type Index interface {
	// Entries returns rows whose names contain term, matched
	// case-insensitively. The database filter only bounds the candidate
	// set handed to the Ranker; it computes no similarity scores.
	// Returns ESCHEMA for unsupported layouts and EQUERY for corrupt
	// databases; both are per-docset failures the caller may skip.
	Entries(ctx context.Context, docset *Docset, term string, limit int) ([]IndexEntry, error)
}

// IndexStats reports size facts about a docset's index database,
// used by diagnostic tooling rather than the search path.
type IndexStats interface {
	// Count returns the number of symbol rows in the docset's index.
	Count(ctx context.Context, docset *Docset) (int, error)
}

// Ranker orders candidate entries by similarity to the query term.
type Ranker interface {
	// Rank scores every candidate, discards scores below threshold,
	// sorts the survivors, and only then truncates to limit. Ordering
	// is descending score with ties broken by shorter name, then
	// case-insensitive lexical order.
	Rank(term string, entries []IndexEntry, threshold, limit int) []SearchResult
}

// Searcher is the engine surface exposed to transports (CLI, tool
// server). Implementations compose the Registry, Index, Ranker, content
// pipeline and Cache.
type Searcher interface {
	// Search runs the full pipeline for one request. Per-docset
	// failures land in SearchResponse.Skipped; only invalid requests
	// fail outright with EINVALID.
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)

	// Docsets returns the discovered inventory.
	Docsets(ctx context.Context) ([]*Docset, error)

	// Content loads and normalizes one document. Returns ENOTFOUND for
	// unknown docsets and EEXTRACT for unreadable content.
	Content(ctx context.Context, docset, relPath string) (string, error)

	// InvalidateCache removes one cache entry, or every entry when key
	// is empty.
	InvalidateCache(ctx context.Context, key string) error

	// RelevantDocs searches docsets matching the detected project stack
	// first, boosting their scores.
	RelevantDocs(ctx context.Context, pc *ProjectContext, term string, limit int) (*SearchResponse, error)

	// MigrationDocs collects upgrade guidance between two versions of a
	// technology.
	MigrationDocs(ctx context.Context, tech, fromVersion, toVersion string) (*SearchResponse, error)

	// APIReference returns current reference entries for an API of a
	// technology.
	APIReference(ctx context.Context, api, tech string) (*SearchResponse, error)
}
