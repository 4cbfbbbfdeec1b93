package corpus

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/veripack/internal/model"
)

// blockElements end the current line when the walker leaves them, so each
// heading, paragraph, or list item becomes its own numbered line.
var blockElements = map[string]struct{}{
	"p": {}, "li": {}, "td": {}, "th": {}, "div": {}, "br": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"blockquote": {}, "pre": {}, "tr": {},
}

// ParseHTML extracts the visible text of an HTML document into numbered
// lines, one per block element. Script, style, noscript, and iframe
// subtrees are skipped. Line numbers are assigned sequentially from 1.
func ParseHTML(id string, r io.Reader) (model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("parse html %s: %w", id, err)
	}

	doc := model.Document{ID: id}
	var current strings.Builder

	flush := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		current.Reset()
		if text == "" {
			return
		}
		doc.Lines = append(doc.Lines, model.Line{
			Number: len(doc.Lines) + 1,
			Text:   text,
		})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				current.WriteString(text)
				current.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			if _, block := blockElements[n.Data]; block {
				flush()
			}
		}
	}

	walk(root)
	flush()

	return doc, nil
}
