package docdex

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultContentBudget is the maximum extracted text length in runes,
// applied after markup stripping.
const DefaultContentBudget = 5000

// ExtractResult holds the extracted content from a documentation page.
type ExtractResult struct {
	// Title is the page title, when one could be determined.
	Title string

	// ContentHTML is the main content as clean HTML. Boilerplate such
	// as navigation, headers and footers has been removed.
	ContentHTML string
}

// Extractor selects the main content region of an HTML page, removing
// boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Renderer flattens clean HTML into readable text. Implementations
// decode entities, collapse incidental whitespace, and preserve the
// contents of code blocks verbatim.
type Renderer interface {
	Render(html string) (string, error)
}

// ContentService loads and normalizes documents from docset bundles.
type ContentService interface {
	// Content returns bounded readable text for the document at relPath
	// inside the docset. Returns EINVALID for traversal paths,
	// ENOTFOUND when the docset ships no matching document, and
	// EEXTRACT when the file cannot be turned into text.
	Content(ctx context.Context, docset *Docset, relPath string) (string, error)
}

// Truncate shortens s to at most n runes. Non-positive n leaves s
// unchanged.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// ValidateRelPath rejects document paths that could escape a docset's
// document root. Paths must be relative and free of traversal segments.
func ValidateRelPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return Errorf(EINVALID, "document path required")
	}
	norm := strings.ReplaceAll(p, "\\", "/")
	if path.IsAbs(norm) || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return Errorf(EINVALID, "document path must be relative")
	}
	for _, seg := range strings.Split(path.Clean(norm), "/") {
		if seg == ".." {
			return Errorf(EINVALID, "document path must not traverse outside the docset")
		}
	}
	return nil
}
