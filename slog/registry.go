package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
)

// Ensure LoggingRegistry implements docdex.Registry.
var _ docdex.Registry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a Registry with discovery logging.
type LoggingRegistry struct {
	next   docdex.Registry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next docdex.Registry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Discover delegates to the wrapped registry and logs the inventory
// walk.
func (r *LoggingRegistry) Discover(ctx context.Context) (docsets []*docdex.Docset, err error) {
	defer func(begin time.Time) {
		r.logger.Info("docset discovery",
			"count", len(docsets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Discover(ctx)
}
