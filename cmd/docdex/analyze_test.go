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

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the detected stack", func(t *testing.T) {
		t.Parallel()

		var gotDir string
		analyzer := &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, dir string) (*docdex.ProjectContext, error) {
				gotDir = dir
				return &docdex.ProjectContext{
					Language:     "python",
					Framework:    "django",
					ProjectType:  "web_application",
					Dependencies: []string{"django", "celery", "redis"},
					Files:        []string{"requirements.txt", "manage.py"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Analyzer: analyzer,
		}

		cmd := &main.AnalyzeCmd{Dir: "/work/shop"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "/work/shop", gotDir)

		output := stdout.String()
		assert.Contains(t, output, "Language:     python")
		assert.Contains(t, output, "Framework:    django")
		assert.Contains(t, output, "Project type: web_application")
		assert.Contains(t, output, "Manifests:    requirements.txt, manage.py")
		assert.Contains(t, output, "Dependencies: django, celery, redis")
	})

	t.Run("omits sections the analyzer could not detect", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (*docdex.ProjectContext, error) {
				return &docdex.ProjectContext{Language: "unknown"}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Analyzer: analyzer,
		}

		cmd := &main.AnalyzeCmd{Dir: "."}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Language:     unknown")
		assert.NotContains(t, output, "Framework:")
		assert.NotContains(t, output, "Project type:")
		assert.NotContains(t, output, "Manifests:")
		assert.NotContains(t, output, "Dependencies:")
	})

	t.Run("returns error when the directory cannot be read", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.Analyzer{
			AnalyzeFn: func(context.Context, string) (*docdex.ProjectContext, error) {
				return nil, docdex.Errorf(docdex.EINVALID, "project path /nope is not a directory")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Analyzer: analyzer,
		}

		cmd := &main.AnalyzeCmd{Dir: "/nope"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: project path /nope is not a directory")
		assert.Empty(t, stdout.String())
	})
}
