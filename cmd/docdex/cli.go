package main

import (
	"context"
	"io"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/mcp"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Searcher   docdex.Searcher
	Analyzer   docdex.Analyzer
	Registry   docdex.Registry
	Index      docdex.Index
	Stats      docdex.IndexStats
	ToolServer *mcp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extractor string `default:"goquery" help:"Content extraction engine: goquery, trafilatura or readability"`
	Markdown  bool   `help:"Render extracted content as markdown instead of plain text"`

	Search  SearchCmd  `cmd:"" help:"Search docset indexes for a symbol or phrase"`
	Docsets DocsetsCmd `cmd:"" help:"List installed docsets"`
	Content ContentCmd `cmd:"" help:"Print one document's extracted text"`
	Analyze AnalyzeCmd `cmd:"" help:"Detect a project's language, framework and dependencies"`
	Cache   CacheCmd   `cmd:"" help:"Manage the response cache"`
	Probe   ProbeCmd   `cmd:"" help:"Report per-docset index health"`
	Serve   ServeCmd   `cmd:"" help:"Serve the documentation tools over stdio"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term      string `arg:"" help:"Search term"`
	Docset    string `short:"d" help:"Restrict the search to one docset"`
	Limit     int    `short:"l" default:"10" help:"Maximum number of results"`
	Threshold int    `short:"t" default:"60" help:"Minimum similarity score (0-100)"`
	Exact     bool   `short:"e" help:"Disable fuzzy matching"`
	Content   bool   `short:"c" help:"Attach extracted document content to results"`
	JSON      bool   `help:"Print the raw JSON response"`
}

// DocsetsCmd is the "docsets" subcommand.
type DocsetsCmd struct{}

// ContentCmd is the "content" subcommand.
type ContentCmd struct {
	Docset string `arg:"" help:"Docset name"`
	Path   string `arg:"" help:"Document path inside the docset"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Project directory"`
}

// CacheCmd groups the cache maintenance subcommands.
type CacheCmd struct {
	Invalidate CacheInvalidateCmd `cmd:"" help:"Drop cached responses"`
}

// CacheInvalidateCmd is the "cache invalidate" subcommand.
type CacheInvalidateCmd struct {
	Key string `arg:"" optional:"" help:"Cache key to drop; omit to clear everything"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
