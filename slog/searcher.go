// Package slog provides logging decorators for the engine services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
	"github.com/google/uuid"
)

// Ensure LoggingSearcher implements docdex.Searcher.
var _ docdex.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with per-operation logging. Each
// search is assigned a query id so its log lines correlate.
type LoggingSearcher struct {
	next   docdex.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docdex.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) Search(ctx context.Context, req docdex.SearchRequest) (resp *docdex.SearchResponse, err error) {
	queryID := uuid.New().String()
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query_id", queryID,
			"term", req.Term,
			"docset", req.Docset,
			"results", resultCount(resp),
			"skipped", skippedCount(resp),
			"cache_hit", resp != nil && resp.CacheHit,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, req)
}

// Docsets delegates to the wrapped searcher and logs the inventory size.
func (s *LoggingSearcher) Docsets(ctx context.Context) (docsets []*docdex.Docset, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list docsets",
			"count", len(docsets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Docsets(ctx)
}

// Content delegates to the wrapped searcher and logs the load.
func (s *LoggingSearcher) Content(ctx context.Context, docset, relPath string) (text string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load content",
			"docset", docset,
			"path", relPath,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Content(ctx, docset, relPath)
}

// InvalidateCache delegates to the wrapped searcher and logs the scope.
func (s *LoggingSearcher) InvalidateCache(ctx context.Context, key string) (err error) {
	scope := key
	if scope == "" {
		scope = "(all)"
	}
	defer func(begin time.Time) {
		s.logger.Info("invalidate cache",
			"key", scope,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.InvalidateCache(ctx, key)
}

// RelevantDocs delegates to the wrapped searcher and logs the detected
// stack alongside the outcome.
func (s *LoggingSearcher) RelevantDocs(ctx context.Context, pc *docdex.ProjectContext, term string, limit int) (resp *docdex.SearchResponse, err error) {
	queryID := uuid.New().String()
	var language, framework string
	if pc != nil {
		language, framework = pc.Language, pc.Framework
	}
	defer func(begin time.Time) {
		s.logger.Info("project search",
			"query_id", queryID,
			"term", term,
			"language", language,
			"framework", framework,
			"results", resultCount(resp),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RelevantDocs(ctx, pc, term, limit)
}

// MigrationDocs delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) MigrationDocs(ctx context.Context, tech, fromVersion, toVersion string) (resp *docdex.SearchResponse, err error) {
	defer func(begin time.Time) {
		s.logger.Info("migration search",
			"technology", tech,
			"from", fromVersion,
			"to", toVersion,
			"results", resultCount(resp),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.MigrationDocs(ctx, tech, fromVersion, toVersion)
}

// APIReference delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) APIReference(ctx context.Context, api, tech string) (resp *docdex.SearchResponse, err error) {
	defer func(begin time.Time) {
		s.logger.Info("api reference",
			"api", api,
			"technology", tech,
			"results", resultCount(resp),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.APIReference(ctx, api, tech)
}

func resultCount(resp *docdex.SearchResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Results)
}

func skippedCount(resp *docdex.SearchResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Skipped)
}
