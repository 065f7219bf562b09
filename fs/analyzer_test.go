package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Project Context Detection
// Manifest files decide language, framework and dependencies

func TestAnalyzer_DetectsNodeProject(t *testing.T) {
	t.Parallel()

	// Given a directory with a package.json
	dir := t.TempDir()
	writeManifest(t, dir, "package.json", `{
		"name": "storefront",
		"dependencies": {"react": "^18.2.0", "react-dom": "^18.2.0"},
		"devDependencies": {"vitest": "^1.0.0"}
	}`)

	// When I analyze it
	pc, err := fs.NewAnalyzer().Analyze(context.Background(), dir)

	// Then the stack is identified
	require.NoError(t, err)
	assert.Equal(t, "javascript", pc.Language)
	assert.Equal(t, "react", pc.Framework)
	assert.Equal(t, "node", pc.ProjectType)
	assert.Contains(t, pc.Dependencies, "react")
	assert.Contains(t, pc.Dependencies, "vitest")
	assert.Equal(t, []string{"package.json"}, pc.Files)
}

func TestAnalyzer_TypeScriptDependencyUpgradesLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "package.json", `{
		"dependencies": {"next": "^14.0.0", "react": "^18.2.0"},
		"devDependencies": {"typescript": "^5.3.0"}
	}`)

	pc, err := fs.NewAnalyzer().Analyze(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "typescript", pc.Language)
	assert.Equal(t, "nextjs", pc.Framework, "next should win over its bundled react")
}

func TestAnalyzer_DetectsGoProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "go.mod", `module example.com/api

go 1.22

require (
	github.com/gin-gonic/gin v1.10.0
	github.com/stretchr/testify v1.9.0 // indirect
)
`)

	pc, err := fs.NewAnalyzer().Analyze(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "go", pc.Language)
	assert.Equal(t, "gin", pc.Framework)
	assert.Contains(t, pc.Dependencies, "github.com/gin-gonic/gin")
}

func TestAnalyzer_DetectsPythonRequirements(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "requirements.txt", `# web stack
Django>=4.2
requests==2.31.0
celery[redis]~=5.3

-r dev-requirements.txt
`)

	pc, err := fs.NewAnalyzer().Analyze(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "python", pc.Language)
	assert.Equal(t, "django", pc.Framework)
	assert.Equal(t, []string{"celery", "django", "requests"}, pc.Dependencies)
}

func TestAnalyzer_DetectsPyProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "pyproject.toml", `[project]
name = "svc"
dependencies = [
    "fastapi>=0.100",
    "uvicorn",
]
`)

	pc, err := fs.NewAnalyzer().Analyze(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "python", pc.Language)
	assert.Equal(t, "fastapi", pc.Framework)
	assert.Equal(t, []string{"fastapi", "uvicorn"}, pc.Dependencies)
}

func TestAnalyzer_FirstManifestDecidesTheLanguage(t *testing.T) {
	t.Parallel()

	// Given a polyglot repository
	dir := t.TempDir()
	writeManifest(t, dir, "package.json", `{"dependencies": {"express": "^4.18.0"}}`)
	writeManifest(t, dir, "requirements.txt", "flask>=3.0\n")

	pc, err := fs.NewAnalyzer().Analyze(context.Background(), dir)

	// Then package.json wins but both manifests are recorded
	require.NoError(t, err)
	assert.Equal(t, "javascript", pc.Language)
	assert.Equal(t, "express", pc.Framework)
	assert.ElementsMatch(t, []string{"package.json", "requirements.txt"}, pc.Files)
}

func TestAnalyzer_EmptyDirectoryIsNotFound(t *testing.T) {
	t.Parallel()

	pc, err := fs.NewAnalyzer().Analyze(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	assert.Nil(t, pc)
}

func TestAnalyzer_MissingDirectoryIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := fs.NewAnalyzer().Analyze(context.Background(), filepath.Join(t.TempDir(), "gone"))

	require.Error(t, err)
	assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
}

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
