package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Extractor = (*Extractor)(nil)

// chromeSelector matches the page furniture stripped before content
// selection.
const chromeSelector = "script, style, noscript, nav, header, footer"

// Extractor pulls the main content region out of documentation pages
// using generator-aware CSS cascades.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an Extractor wired with every known generator
// selector and the generic fallback.
func NewExtractor() *Extractor {
	registry := NewRegistry(NewDetector(), NewGenericSelector())
	registry.Register(GeneratorSphinx, NewSphinxSelector())
	registry.Register(GeneratorMkDocs, NewMkDocsSelector())
	registry.Register(GeneratorJSDoc, NewJSDocSelector())
	return &Extractor{registry: registry}
}

// Extract processes raw HTML and returns the main content region.
// Pages with no recognizable region degrade to the document body.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdex.Errorf(docdex.EEXTRACT, "parsing document: %v", err)
	}

	// Titles live in chrome, so read them before stripping it.
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(chromeSelector).Remove()

	content := e.registry.GetForHTML(rawHTML).Select(doc)
	if content == nil {
		if body := doc.Find("body"); body.Length() > 0 {
			content = body.First()
		}
	}
	if content == nil {
		return nil, docdex.Errorf(docdex.EEXTRACT, "document has no content region")
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, docdex.Errorf(docdex.EEXTRACT, "rendering content region: %v", err)
	}

	return &docdex.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}
