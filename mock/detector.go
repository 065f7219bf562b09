package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.SchemaDetector = (*SchemaDetector)(nil)

// SchemaDetector is a mock implementation of docdex.SchemaDetector.
type SchemaDetector struct {
	DetectSchemaFn func(ctx context.Context, indexPath string) (docdex.SchemaKind, error)
}

func (d *SchemaDetector) DetectSchema(ctx context.Context, indexPath string) (docdex.SchemaKind, error) {
	return d.DetectSchemaFn(ctx, indexPath)
}
