package goquery

var _ ContentSelector = (*SphinxSelector)(nil)

// SphinxSelector locates content in Sphinx-generated pages. Validated
// against Sphinx v4.x-v7.x output with the classic and ReadTheDocs
// themes:
// - div[role='main'] carries the document in both themes
// - div.body wraps content in the classic theme
// - div.document is the outer wrapper older themes mark
type SphinxSelector struct {
	*BaseSelector
}

// NewSphinxSelector creates a new SphinxSelector.
func NewSphinxSelector() *SphinxSelector {
	return &SphinxSelector{
		BaseSelector: NewBaseSelector("sphinx",
			"div[role='main']",
			"div.body",
			"div.document",
			"section#main-content",
		),
	}
}
