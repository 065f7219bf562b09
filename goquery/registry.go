package goquery

// Registry manages generator-specific content selectors and
// auto-detects generators from page HTML. When the generator is
// unknown or has no registered selector, the fallback cascade runs
// instead.
type Registry struct {
	detector  *Detector
	fallback  ContentSelector
	selectors map[Generator]ContentSelector
}

// NewRegistry creates a new Registry with the given detector and
// fallback selector.
func NewRegistry(detector *Detector, fallback ContentSelector) *Registry {
	return &Registry{
		detector:  detector,
		fallback:  fallback,
		selectors: make(map[Generator]ContentSelector),
	}
}

// Register adds a selector for a generator, replacing any existing
// registration.
func (r *Registry) Register(generator Generator, selector ContentSelector) {
	r.selectors[generator] = selector
}

// Get returns the selector for a specific generator, or nil if none is
// registered.
func (r *Registry) Get(generator Generator) ContentSelector {
	return r.selectors[generator]
}

// GetForHTML detects the generator from HTML and returns the matching
// selector, falling back when no specific one is registered.
func (r *Registry) GetForHTML(html string) ContentSelector {
	generator := r.detector.Detect(html)
	if selector, ok := r.selectors[generator]; ok {
		return selector
	}
	return r.fallback
}
