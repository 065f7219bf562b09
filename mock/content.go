package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.ContentService = (*ContentService)(nil)

// ContentService is a mock implementation of docdex.ContentService.
type ContentService struct {
	ContentFn func(ctx context.Context, docset *docdex.Docset, relPath string) (string, error)
}

func (s *ContentService) Content(ctx context.Context, docset *docdex.Docset, relPath string) (string, error) {
	return s.ContentFn(ctx, docset, relPath)
}
