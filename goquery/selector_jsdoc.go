package goquery

var _ ContentSelector = (*JSDocSelector)(nil)

// JSDocSelector locates content in JSDoc-generated pages. The default
// template renders everything into div#main with the page body in
// article elements.
type JSDocSelector struct {
	*BaseSelector
}

// NewJSDocSelector creates a new JSDocSelector.
func NewJSDocSelector() *JSDocSelector {
	return &JSDocSelector{
		BaseSelector: NewBaseSelector("jsdoc",
			"div#main article",
			"div#main",
			"main",
		),
	}
}
