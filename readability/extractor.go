// Package readability extracts main content using go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from
// documentation pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &docdex.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
