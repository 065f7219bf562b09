package main

import (
	"fmt"
	"strings"

	"github.com/docdex/docdex"
)

// probeSampleSize bounds the sample entries shown per docset.
const probeSampleSize = 3

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	docsets, err := deps.Registry.Discover(deps.Ctx)
	if err != nil {
		if docdex.ErrorCode(err) == docdex.EDISCOVERY {
			fmt.Fprintln(deps.Stdout, "No docsets found. Set DOCDEX_DOCSETS_PATH to your docset directory.")
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	healthy := 0
	for _, ds := range docsets {
		count, err := deps.Stats.Count(deps.Ctx, ds)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%s  %s  unreadable: %s\n", ds.Name, ds.Schema, docdex.ErrorMessage(err))
			continue
		}
		healthy++
		fmt.Fprintf(deps.Stdout, "%s  %s  %d entries\n", ds.Name, ds.Schema, count)
		if samples := c.sample(deps, ds); len(samples) > 0 {
			fmt.Fprintf(deps.Stdout, "    sample: %s\n", strings.Join(samples, ", "))
		}
	}

	fmt.Fprintf(deps.Stdout, "%d of %d docsets healthy\n", healthy, len(docsets))
	return nil
}

// sample fetches a few entry names from a docset's index. An empty term
// matches everything, so the first rows in name order come back.
func (c *ProbeCmd) sample(deps *Dependencies, ds *docdex.Docset) []string {
	entries, err := deps.Index.Entries(deps.Ctx, ds, "", probeSampleSize)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
		if len(names) == probeSampleSize {
			break
		}
	}
	return names
}
