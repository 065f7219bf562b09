package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Renderer = (*TextRenderer)(nil)

// TextRenderer flattens HTML into readable plain text. Prose
// whitespace collapses to single spaces, block elements land on their
// own lines, and the contents of pre blocks pass through verbatim so
// code keeps its indentation.
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figure": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "li": true, "main": true,
	"ol": true, "p": true, "section": true, "table": true, "tr": true,
	"ul": true,
}

var skipTags = map[string]bool{
	"head": true, "iframe": true, "noscript": true, "script": true,
	"style": true,
}

// Render flattens rawHTML to text. Entities arrive decoded courtesy of
// the HTML parser.
func (r *TextRenderer) Render(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", docdex.Errorf(docdex.EINVALID, "empty HTML input")
	}

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", docdex.Errorf(docdex.EEXTRACT, "parsing content: %v", err)
	}

	w := &textWriter{}
	flatten(root, w, false)
	return strings.TrimSpace(w.b.String()), nil
}

func flatten(n *html.Node, w *textWriter, pre bool) {
	if n.Type == html.TextNode {
		if pre {
			w.write(n.Data)
		} else {
			w.prose(n.Data)
		}
		return
	}
	if n.Type == html.ElementNode {
		switch {
		case skipTags[n.Data]:
			return
		case n.Data == "pre":
			w.breakLine()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				flatten(c, w, true)
			}
			w.breakLine()
			return
		case n.Data == "br":
			w.write("\n")
			return
		case blockTags[n.Data]:
			w.breakLine()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(c, w, pre)
	}

	if n.Type != html.ElementNode {
		return
	}
	switch {
	case blockTags[n.Data] && !pre:
		w.breakLine()
	case (n.Data == "td" || n.Data == "th") && n.NextSibling != nil:
		// Cells on one row separate with a space.
		w.prose(" ")
	}
}

// textWriter accumulates output while tracking the last byte written,
// so separators never stack up.
type textWriter struct {
	b    strings.Builder
	last byte
}

func (w *textWriter) write(s string) {
	if s == "" {
		return
	}
	w.b.WriteString(s)
	w.last = s[len(s)-1]
}

// prose writes collapsed text, dropping a leading separator when the
// output already sits at a line start or after a space.
func (w *textWriter) prose(s string) {
	collapsed := collapseSpace(s)
	if collapsed == "" {
		return
	}
	if strings.HasPrefix(collapsed, " ") && (w.last == 0 || w.last == '\n' || w.last == ' ') {
		collapsed = strings.TrimPrefix(collapsed, " ")
	}
	w.write(collapsed)
}

// breakLine terminates the current line if one is open.
func (w *textWriter) breakLine() {
	if w.last != 0 && w.last != '\n' {
		w.write("\n")
	}
}

// collapseSpace squeezes runs of whitespace to single spaces while
// keeping one boundary separator on either end.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}

	out := strings.Join(fields, " ")
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(r) {
		out = " " + out
	}
	if r, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(r) {
		out += " "
	}
	return out
}
