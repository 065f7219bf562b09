package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/mock"
	docslog "github.com/docdex/docdex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRegistry_Discover(t *testing.T) {
	t.Parallel()

	t.Run("logs inventory size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Registry{
			DiscoverFn: func(ctx context.Context) ([]*docdex.Docset, error) {
				return []*docdex.Docset{
					{Name: "Python 3", RealPath: "/d/Python_3.docset", IndexPath: "/d/i"},
					{Name: "React", RealPath: "/d/React.docset", IndexPath: "/d/i"},
				}, nil
			},
		}

		registry := docslog.NewLoggingRegistry(inner, logger)
		docsets, err := registry.Discover(context.Background())

		require.NoError(t, err)
		assert.Len(t, docsets, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=\"docset discovery\"")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs discovery failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Registry{
			DiscoverFn: func(ctx context.Context) ([]*docdex.Docset, error) {
				return nil, docdex.Errorf(docdex.EDISCOVERY, "no docsets found under /tmp/none")
			},
		}

		registry := docslog.NewLoggingRegistry(inner, logger)
		_, err := registry.Discover(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, "no docsets found")
	})
}
