package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/goquery"
	"github.com/docdex/docdex/htmltomarkdown"
	"github.com/docdex/docdex/levenshtein"
	"github.com/docdex/docdex/lru"
	"github.com/docdex/docdex/mcp"
	"github.com/docdex/docdex/readability"
	"github.com/docdex/docdex/search"
	docslog "github.com/docdex/docdex/slog"
	"github.com/docdex/docdex/sqlite"
	"github.com/docdex/docdex/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Docset search roots. Set before calling Run().
	Roots []string

	// Disk cache directory. Set before calling Run().
	CacheDir string

	// Minimum level for the stderr log handler.
	LogLevel slog.Level

	// Index owns the open index database handles.
	Index *sqlite.Index
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Roots:    defaultRoots(),
		CacheDir: defaultCacheDir(),
		LogLevel: defaultLogLevel(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Index != nil {
		return m.Index.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	extractor, err := buildExtractor(cli.Extractor)
	if err != nil {
		return err
	}
	var renderer docdex.Renderer = goquery.NewTextRenderer()
	if cli.Markdown {
		renderer = htmltomarkdown.NewRenderer()
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: m.LogLevel}))

	// The memory tier always works; the disk tier is best effort.
	tiers := []docdex.Cache{lru.NewCache(lru.DefaultSize)}
	disk, err := fs.NewCache(m.CacheDir)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: set DOCDEX_CACHE_DIR to a writable directory (disk cache disabled: %s)\n", docdex.ErrorMessage(err))
	} else {
		tiers = append(tiers, disk)
	}
	cache := docdex.NewTieredCache(tiers...)

	m.Index = sqlite.NewIndex()
	defer m.Close()

	// Wire core services into dependencies
	registry := docslog.NewLoggingRegistry(fs.NewRegistry(m.Roots, m.Index, cache), logger)
	searcher := docslog.NewLoggingSearcher(&search.Searcher{
		Registry: registry,
		Index:    m.Index,
		Ranker:   levenshtein.NewRanker(),
		Contents: &fs.ContentService{Extractor: extractor, Renderer: renderer},
		Cache:    cache,
	}, logger)
	analyzer := fs.NewAnalyzer()

	deps.Searcher = searcher
	deps.Analyzer = analyzer
	deps.Registry = registry
	deps.Index = m.Index
	deps.Stats = m.Index

	if cmd == "serve" {
		deps.ToolServer = mcp.NewServer(searcher, analyzer)
	}

	return kongCtx.Run(deps)
}

// buildExtractor selects the content extraction engine by name.
func buildExtractor(name string) (docdex.Extractor, error) {
	switch name {
	case "", "goquery":
		return goquery.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (expected goquery, trafilatura or readability)", name)
	}
}

// defaultRoots returns the docset search roots, honoring
// DOCDEX_DOCSETS_PATH as a path-list of directories.
func defaultRoots() []string {
	if path := os.Getenv("DOCDEX_DOCSETS_PATH"); path != "" {
		return filepath.SplitList(path)
	}
	return []string{fs.DefaultRoot()}
}

func defaultCacheDir() string {
	if dir := os.Getenv("DOCDEX_CACHE_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "docdex")
	}
	return filepath.Join(base, "docdex")
}

func defaultLogLevel() slog.Level {
	switch strings.ToLower(os.Getenv("DOCDEX_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
