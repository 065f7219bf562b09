package docdex

import "context"

// ProjectContext describes the technology stack detected in a working
// directory. Searches can use it to bias which docsets are consulted
// first.
type ProjectContext struct {
	Language     string   `json:"language"`
	Framework    string   `json:"framework,omitempty"`
	ProjectType  string   `json:"projectType,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`

	// Files lists the manifest files the detection was based on.
	Files []string `json:"files,omitempty"`
}

// Analyzer detects the technology stack of a project directory from its
// manifest files.
type Analyzer interface {
	// Analyze inspects manifests under dir (package.json, go.mod,
	// pyproject.toml and friends). Returns ENOTFOUND when nothing
	// recognizable exists.
	Analyze(ctx context.Context, dir string) (*ProjectContext, error)
}
