// Package htmltomarkdown renders extracted content as Markdown, an
// alternative to plain text that keeps headings, links and fenced code
// blocks.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Renderer = (*Renderer)(nil)

// Renderer wraps html-to-markdown to turn content HTML into Markdown.
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Renderer{conv: conv}
}

// Render transforms content HTML into Markdown.
func (r *Renderer) Render(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	result, err := r.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
