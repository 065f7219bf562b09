// Package goquery selects and flattens the main content region of
// documentation pages shipped inside docset bundles.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Generator identifies the tool that produced a documentation page.
type Generator string

const (
	GeneratorUnknown Generator = ""
	GeneratorSphinx  Generator = "sphinx"
	GeneratorMkDocs  Generator = "mkdocs"
	GeneratorJSDoc   Generator = "jsdoc"
)

// Detector identifies documentation generators from page HTML. It
// checks the meta generator tag first, then falls back to structural
// markers unique to each generator's templates.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified generator.
// Returns GeneratorUnknown if the generator cannot be determined.
func (d *Detector) Detect(html string) Generator {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return GeneratorUnknown
	}

	// Meta generator tags are the most reliable signal when present.
	if generator := d.detectFromMetaGenerator(doc); generator != GeneratorUnknown {
		return generator
	}

	// Sphinx markers cover both the classic and ReadTheDocs themes.
	if d.hasSelector(doc, ".sphinxsidebar") ||
		d.hasSelector(doc, ".toctree-wrapper") ||
		d.hasSelector(doc, "div.documentwrapper") ||
		d.hasSelector(doc, ".wy-nav-side") {
		return GeneratorSphinx
	}

	// data-md-* attributes are unique to MkDocs Material.
	if d.hasSelector(doc, "[data-md-color-scheme]") ||
		d.hasSelector(doc, "[data-md-component]") ||
		d.hasSelector(doc, ".md-nav--primary") {
		return GeneratorMkDocs
	}

	// The JSDoc default template ships prettify for code highlighting.
	if d.hasSelector(doc, "script[src*='prettify']") ||
		(d.hasSelector(doc, "#main") && d.hasSelector(doc, ".prettyprint")) {
		return GeneratorJSDoc
	}

	return GeneratorUnknown
}

func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) Generator {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return GeneratorUnknown
	}

	switch {
	case strings.Contains(generator, "sphinx"):
		return GeneratorSphinx
	case strings.Contains(generator, "mkdocs"):
		return GeneratorMkDocs
	case strings.Contains(generator, "jsdoc"):
		return GeneratorJSDoc
	}

	return GeneratorUnknown
}

// hasSelector checks if the document contains at least one element
// matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
