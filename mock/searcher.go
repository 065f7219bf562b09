package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docdex.Searcher.
type Searcher struct {
	SearchFn          func(ctx context.Context, req docdex.SearchRequest) (*docdex.SearchResponse, error)
	DocsetsFn         func(ctx context.Context) ([]*docdex.Docset, error)
	ContentFn         func(ctx context.Context, docset, relPath string) (string, error)
	InvalidateCacheFn func(ctx context.Context, key string) error
	RelevantDocsFn    func(ctx context.Context, pc *docdex.ProjectContext, term string, limit int) (*docdex.SearchResponse, error)
	MigrationDocsFn   func(ctx context.Context, tech, fromVersion, toVersion string) (*docdex.SearchResponse, error)
	APIReferenceFn    func(ctx context.Context, api, tech string) (*docdex.SearchResponse, error)
}

func (s *Searcher) Search(ctx context.Context, req docdex.SearchRequest) (*docdex.SearchResponse, error) {
	return s.SearchFn(ctx, req)
}

func (s *Searcher) Docsets(ctx context.Context) ([]*docdex.Docset, error) {
	return s.DocsetsFn(ctx)
}

func (s *Searcher) Content(ctx context.Context, docset, relPath string) (string, error) {
	return s.ContentFn(ctx, docset, relPath)
}

func (s *Searcher) InvalidateCache(ctx context.Context, key string) error {
	return s.InvalidateCacheFn(ctx, key)
}

func (s *Searcher) RelevantDocs(ctx context.Context, pc *docdex.ProjectContext, term string, limit int) (*docdex.SearchResponse, error) {
	return s.RelevantDocsFn(ctx, pc, term, limit)
}

func (s *Searcher) MigrationDocs(ctx context.Context, tech, fromVersion, toVersion string) (*docdex.SearchResponse, error) {
	return s.MigrationDocsFn(ctx, tech, fromVersion, toVersion)
}

func (s *Searcher) APIReference(ctx context.Context, api, tech string) (*docdex.SearchResponse, error) {
	return s.APIReferenceFn(ctx, api, tech)
}
