package goquery

var _ ContentSelector = (*GenericSelector)(nil)

// GenericSelector is the fallback for pages from unrecognized
// generators. The cascade covers the containers documentation tooling
// conventionally uses, from semantic elements down to class-based
// wrappers.
type GenericSelector struct {
	*BaseSelector
}

// NewGenericSelector creates a new GenericSelector.
func NewGenericSelector() *GenericSelector {
	return &GenericSelector{
		BaseSelector: NewBaseSelector("generic",
			"main",
			"article",
			"[role='main']",
			"div#content",
			"div.content",
			"div.main",
			"div.body",
		),
	}
}
