package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Analyzer = (*Analyzer)(nil)

// Analyzer detects a project's technology stack from the manifest
// files in its root directory.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// manifestReaders are tried in order; the first manifest present
// decides language and dependencies, later ones only add to Files.
var manifestReaders = []struct {
	file string
	read func(path string, pc *docdex.ProjectContext)
}{
	{"package.json", readPackageJSON},
	{"go.mod", readGoMod},
	{"pyproject.toml", readPyProject},
	{"requirements.txt", readRequirements},
	{"Pipfile", readPipfile},
	{"Cargo.toml", readCargoToml},
}

// Analyze inspects dir and reports language, framework and
// dependencies. Returns ENOTFOUND when no recognizable manifest
// exists.
func (a *Analyzer) Analyze(ctx context.Context, dir string) (*docdex.ProjectContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "project directory %q does not exist", dir)
	}

	pc := &docdex.ProjectContext{}
	for _, mr := range manifestReaders {
		path := filepath.Join(dir, mr.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		pc.Files = append(pc.Files, mr.file)
		if pc.Language == "" {
			mr.read(path, pc)
		}
	}

	if len(pc.Files) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no project manifest found in %q", dir)
	}

	pc.Framework = detectFramework(pc.Dependencies)
	sort.Strings(pc.Dependencies)
	return pc, nil
}

func readPackageJSON(path string, pc *docdex.ProjectContext) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return
	}

	pc.Language = "javascript"
	pc.ProjectType = "node"
	for dep := range manifest.Dependencies {
		pc.Dependencies = append(pc.Dependencies, dep)
	}
	for dep := range manifest.DevDependencies {
		pc.Dependencies = append(pc.Dependencies, dep)
		if dep == "typescript" {
			pc.Language = "typescript"
		}
	}
	if _, ok := manifest.Dependencies["typescript"]; ok {
		pc.Language = "typescript"
	}
}

func readGoMod(path string, pc *docdex.ProjectContext) {
	pc.Language = "go"
	pc.ProjectType = "go-module"

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	inRequire := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "//"):
		case strings.HasPrefix(line, "require ("):
			inRequire = true
		case inRequire && line == ")":
			inRequire = false
		case inRequire, strings.HasPrefix(line, "require "):
			fields := strings.Fields(strings.TrimPrefix(line, "require "))
			if len(fields) >= 1 && strings.Contains(fields[0], "/") {
				pc.Dependencies = append(pc.Dependencies, fields[0])
			}
		}
	}
}

func readRequirements(path string, pc *docdex.ProjectContext) {
	pc.Language = "python"
	pc.ProjectType = "python"

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Strip version specifiers and extras: "django>=4.2" -> "django".
		name := line
		for _, sep := range []string{"==", ">=", "<=", "~=", "!=", ">", "<", "[", ";", " "} {
			if i := strings.Index(name, sep); i >= 0 {
				name = name[:i]
			}
		}
		if name != "" {
			pc.Dependencies = append(pc.Dependencies, strings.ToLower(name))
		}
	}
}

func readPyProject(path string, pc *docdex.ProjectContext) {
	pc.Language = "python"
	pc.ProjectType = "python"

	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// Dependencies live as quoted requirement strings inside the
	// [project] dependencies array; a line scan is enough here.
	inDeps := false
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "dependencies"):
			inDeps = strings.Contains(line, "[") && !strings.Contains(line, "]")
		case inDeps && strings.HasPrefix(line, "]"):
			inDeps = false
		case inDeps:
			name := strings.Trim(line, `",' `)
			for _, sep := range []string{"==", ">=", "<=", "~=", "!=", ">", "<", "[", ";", " "} {
				if i := strings.Index(name, sep); i >= 0 {
					name = name[:i]
				}
			}
			if name != "" {
				pc.Dependencies = append(pc.Dependencies, strings.ToLower(name))
			}
		}
	}
}

func readPipfile(path string, pc *docdex.ProjectContext) {
	pc.Language = "python"
	pc.ProjectType = "python"

	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	inPackages := false
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "[packages]" || line == "[dev-packages]":
			inPackages = true
		case strings.HasPrefix(line, "["):
			inPackages = false
		case inPackages && strings.Contains(line, "="):
			name := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
			name = strings.Trim(name, `"'`)
			if name != "" {
				pc.Dependencies = append(pc.Dependencies, strings.ToLower(name))
			}
		}
	}
}

func readCargoToml(path string, pc *docdex.ProjectContext) {
	pc.Language = "rust"
	pc.ProjectType = "cargo"

	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	inDeps := false
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "[dependencies]" || line == "[dev-dependencies]":
			inDeps = true
		case strings.HasPrefix(line, "["):
			inDeps = false
		case inDeps && strings.Contains(line, "="):
			name := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
			if name != "" {
				pc.Dependencies = append(pc.Dependencies, strings.ToLower(name))
			}
		}
	}
}

// frameworkHints map dependency names to frameworks; more specific
// entries come first so "next" wins over its bundled "react".
var frameworkHints = []struct{ dep, framework string }{
	{"next", "nextjs"},
	{"@angular/core", "angular"},
	{"svelte", "svelte"},
	{"vue", "vue"},
	{"react", "react"},
	{"express", "express"},
	{"django", "django"},
	{"flask", "flask"},
	{"fastapi", "fastapi"},
	{"github.com/gin-gonic/gin", "gin"},
	{"github.com/labstack/echo/v4", "echo"},
	{"github.com/go-chi/chi/v5", "chi"},
	{"actix-web", "actix"},
	{"axum", "axum"},
}

func detectFramework(deps []string) string {
	set := make(map[string]bool, len(deps))
	for _, dep := range deps {
		set[strings.ToLower(dep)] = true
	}
	for _, hint := range frameworkHints {
		if set[hint.dep] {
			return hint.framework
		}
	}
	return ""
}
