package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/docdex/docdex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	req := docdex.SearchRequest{
		Term:           c.Term,
		Docset:         c.Docset,
		Limit:          c.Limit,
		Threshold:      c.Threshold,
		IncludeContent: c.Content,
		Exact:          c.Exact,
	}

	resp, err := deps.Searcher.Search(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	for _, skip := range resp.Skipped {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", skip.Docset, skip.Reason)
	}

	if c.JSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	if len(resp.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches found.")
		return nil
	}

	for _, r := range resp.Results {
		fmt.Fprintf(deps.Stdout, "%3d  %s  %s  %s\n", r.Score, describe(r.Entry), r.Entry.Docset, location(r.Entry))
		if r.Snippet != "" {
			printIndented(deps.Stdout, r.Snippet)
		}
	}

	return nil
}

// describe renders an entry name with its symbol type when known.
func describe(e docdex.IndexEntry) string {
	if e.Type == "" {
		return e.Name
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Type)
}

// location renders an entry's document path with its anchor.
func location(e docdex.IndexEntry) string {
	if e.Anchor == "" {
		return e.Path
	}
	return e.Path + "#" + e.Anchor
}

func printIndented(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(w, "      %s\n", line)
	}
}
