package main

import (
	"fmt"
	"strings"

	"github.com/docdex/docdex"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	pc, err := deps.Analyzer.Analyze(deps.Ctx, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Language:     %s\n", pc.Language)
	if pc.Framework != "" {
		fmt.Fprintf(deps.Stdout, "Framework:    %s\n", pc.Framework)
	}
	if pc.ProjectType != "" {
		fmt.Fprintf(deps.Stdout, "Project type: %s\n", pc.ProjectType)
	}
	if len(pc.Files) > 0 {
		fmt.Fprintf(deps.Stdout, "Manifests:    %s\n", strings.Join(pc.Files, ", "))
	}
	if len(pc.Dependencies) > 0 {
		fmt.Fprintf(deps.Stdout, "Dependencies: %s\n", strings.Join(pc.Dependencies, ", "))
	}

	return nil
}
