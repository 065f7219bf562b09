package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var (
	_ docdex.Index      = (*Index)(nil)
	_ docdex.IndexStats = (*Index)(nil)
)

// Index is a mock implementation of docdex.Index and docdex.IndexStats.
type Index struct {
	EntriesFn func(ctx context.Context, docset *docdex.Docset, term string, limit int) ([]docdex.IndexEntry, error)
	CountFn   func(ctx context.Context, docset *docdex.Docset) (int, error)
}

func (i *Index) Entries(ctx context.Context, docset *docdex.Docset, term string, limit int) ([]docdex.IndexEntry, error) {
	return i.EntriesFn(ctx, docset, term, limit)
}

func (i *Index) Count(ctx context.Context, docset *docdex.Docset) (int, error) {
	return i.CountFn(ctx, docset)
}
