package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the content command.
func (c *ContentCmd) Run(deps *Dependencies) error {
	text, err := deps.Searcher.Content(deps.Ctx, c.Docset, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}
