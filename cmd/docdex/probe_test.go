package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/docdex/docdex"
	main "github.com/docdex/docdex/cmd/docdex"
	"github.com/docdex/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports entry counts and sample symbols per docset", func(t *testing.T) {
		t.Parallel()

		registry := &mock.Registry{
			DiscoverFn: func(context.Context) ([]*docdex.Docset, error) {
				return []*docdex.Docset{
					{Name: "Python 3", Schema: docdex.SchemaSearchIndex},
					{Name: "SwiftUI", Schema: docdex.SchemaTokenTable},
				}, nil
			},
		}
		index := &mock.Index{
			CountFn: func(_ context.Context, ds *docdex.Docset) (int, error) {
				if ds.Name == "Python 3" {
					return 4210, nil
				}
				return 7, nil
			},
			EntriesFn: func(_ context.Context, ds *docdex.Docset, term string, limit int) ([]docdex.IndexEntry, error) {
				// Sampling asks for everything, bounded
				assert.Empty(t, term)
				assert.Equal(t, 3, limit)
				if ds.Name == "SwiftUI" {
					return nil, nil
				}
				return []docdex.IndexEntry{
					{Docset: ds.Name, Name: "abs"},
					{Docset: ds.Name, Name: "filter"},
					{Docset: ds.Name, Name: "map"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Registry: registry,
			Index:    index,
			Stats:    index,
		}

		cmd := &main.ProbeCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Python 3  search_index  4210 entries")
		assert.Contains(t, output, "    sample: abs, filter, map")
		assert.Contains(t, output, "SwiftUI  token_table  7 entries")
		assert.Contains(t, output, "2 of 2 docsets healthy")
	})

	t.Run("marks unreadable docsets and keeps going", func(t *testing.T) {
		t.Parallel()

		registry := &mock.Registry{
			DiscoverFn: func(context.Context) ([]*docdex.Docset, error) {
				return []*docdex.Docset{
					{Name: "Broken", Schema: docdex.SchemaUnsupported},
					{Name: "Go", Schema: docdex.SchemaSearchIndex},
				}, nil
			},
		}
		index := &mock.Index{
			CountFn: func(_ context.Context, ds *docdex.Docset) (int, error) {
				if ds.Name == "Broken" {
					return 0, docdex.Errorf(docdex.ESCHEMA, "docset %q has an unsupported index layout", ds.Name)
				}
				return 12, nil
			},
			EntriesFn: func(_ context.Context, ds *docdex.Docset, _ string, _ int) ([]docdex.IndexEntry, error) {
				return []docdex.IndexEntry{{Docset: ds.Name, Name: "append"}}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Registry: registry,
			Index:    index,
			Stats:    index,
		}

		cmd := &main.ProbeCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, `Broken  unsupported  unreadable: docset "Broken" has an unsupported index layout`)
		assert.Contains(t, output, "Go  search_index  12 entries")
		assert.Contains(t, output, "1 of 2 docsets healthy")
	})

	t.Run("shows a hint when no docsets are installed", func(t *testing.T) {
		t.Parallel()

		registry := &mock.Registry{
			DiscoverFn: func(context.Context) ([]*docdex.Docset, error) {
				return nil, docdex.Errorf(docdex.EDISCOVERY, "no docsets found under /docs")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Registry: registry,
		}

		cmd := &main.ProbeCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No docsets found.")
		assert.Empty(t, stderr.String())
	})

	t.Run("returns error when discovery itself fails", func(t *testing.T) {
		t.Parallel()

		registry := &mock.Registry{
			DiscoverFn: func(context.Context) ([]*docdex.Docset, error) {
				return nil, docdex.Errorf(docdex.EINTERNAL, "walking /docs: permission denied")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Registry: registry,
		}

		cmd := &main.ProbeCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: walking /docs: permission denied")
	})
}
