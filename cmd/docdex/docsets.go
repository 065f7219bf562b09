package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the docsets command.
func (c *DocsetsCmd) Run(deps *Dependencies) error {
	docsets, err := deps.Searcher.Docsets(deps.Ctx)
	if err != nil {
		if docdex.ErrorCode(err) == docdex.EDISCOVERY {
			fmt.Fprintln(deps.Stdout, "No docsets found. Set DOCDEX_DOCSETS_PATH to your docset directory.")
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	for _, ds := range docsets {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", ds.Name, ds.Schema, ds.Path)
	}

	return nil
}
