package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Registry = (*Registry)(nil)

// Registry is a mock implementation of docdex.Registry.
type Registry struct {
	DiscoverFn func(ctx context.Context) ([]*docdex.Docset, error)
}

func (r *Registry) Discover(ctx context.Context) ([]*docdex.Docset, error) {
	return r.DiscoverFn(ctx)
}
