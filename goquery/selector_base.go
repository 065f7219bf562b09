package goquery

import (
	"github.com/PuerkitoBio/goquery"
)

// ContentSelector locates the main content region of a documentation
// page.
type ContentSelector interface {
	// Name returns the selector's identifier.
	Name() string

	// Select returns the content region, or nil when the page carries
	// none of the selector's markers.
	Select(doc *goquery.Document) *goquery.Selection
}

// BaseSelector walks a list of CSS selectors and returns the first
// region that matches. Generator-specific selectors are thin
// configurations of this cascade.
type BaseSelector struct {
	name      string
	selectors []string
}

// NewBaseSelector creates a cascade over the given selectors.
func NewBaseSelector(name string, selectors ...string) *BaseSelector {
	return &BaseSelector{name: name, selectors: selectors}
}

// Name returns the selector's identifier.
func (s *BaseSelector) Name() string {
	return s.name
}

// Select returns the first matching region in cascade order.
func (s *BaseSelector) Select(doc *goquery.Document) *goquery.Selection {
	for _, selector := range s.selectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}
