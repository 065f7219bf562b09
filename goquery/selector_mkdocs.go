package goquery

var _ ContentSelector = (*MkDocsSelector)(nil)

// MkDocsSelector locates content in MkDocs-generated pages, including
// the Material theme:
// - article.md-content__inner is the Material theme's document body
// - div.md-content wraps it one level up
// - div[role='main'] covers the stock MkDocs themes
type MkDocsSelector struct {
	*BaseSelector
}

// NewMkDocsSelector creates a new MkDocsSelector.
func NewMkDocsSelector() *MkDocsSelector {
	return &MkDocsSelector{
		BaseSelector: NewBaseSelector("mkdocs",
			"article.md-content__inner",
			"div.md-content",
			"div[role='main']",
		),
	}
}
