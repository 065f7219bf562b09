package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the serve command. Tool traffic runs over stdio, so the
// startup announcement goes to stderr.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if deps.ToolServer == nil {
		err := docdex.Errorf(docdex.EUNAVAILABLE, "tool server not configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stderr, "docdex tool server listening on stdio")
	return deps.ToolServer.Serve()
}
