package extract

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// HTML extracts visible text from .html files. Script and style bodies
// are skipped; text nodes are separated by newlines.
type HTML struct{}

// ExtractText implements the Extractor interface for HTML files
func (HTML) ExtractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", extractionError("html", errors.New("invalid UTF-8"))
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", extractionError("html", err)
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, "\n"), nil
}
