package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of docdex.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, dir string) (*docdex.ProjectContext, error)
}

func (a *Analyzer) Analyze(ctx context.Context, dir string) (*docdex.ProjectContext, error) {
	return a.AnalyzeFn(ctx, dir)
}
