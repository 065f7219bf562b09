package main

import (
	"fmt"
	"strings"

	"github.com/docdex/docdex"
)

// Run executes the cache invalidate command.
func (c *CacheInvalidateCmd) Run(deps *Dependencies) error {
	if err := deps.Searcher.InvalidateCache(deps.Ctx, c.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if strings.TrimSpace(c.Key) == "" {
		fmt.Fprintln(deps.Stdout, "Cache cleared")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Removed cache entry %s\n", c.Key)
	return nil
}
