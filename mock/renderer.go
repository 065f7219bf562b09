package mock

import "github.com/docdex/docdex"

var _ docdex.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of docdex.Renderer.
type Renderer struct {
	RenderFn func(html string) (string, error)
}

func (r *Renderer) Render(html string) (string, error) {
	return r.RenderFn(html)
}
