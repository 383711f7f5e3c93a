package conftool

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// parseFragment parses an HTML fragment in a div context. ConfTool field
// fragments are small and well-formed enough for this to succeed; callers
// fall back to regex stripping when it doesn't.
func parseFragment(fragment string) ([]*xhtml.Node, error) {
	ctx := &xhtml.Node{Type: xhtml.ElementNode, Data: "div", DataAtom: atom.Div}
	return xhtml.ParseFragment(strings.NewReader(fragment), ctx)
}

// StripMarkup removes all markup from an HTML fragment and returns its
// trimmed text content with entities decoded.
func StripMarkup(fragment string) string {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return strings.TrimSpace(tagRe.ReplaceAllString(html.UnescapeString(fragment), ""))
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n, nil)
	}
	return strings.TrimSpace(b.String())
}

// collectText appends the text content of a node tree to b. Elements for
// which skip returns true are omitted along with their entire subtree.
func collectText(b *strings.Builder, n *xhtml.Node, skip func(*xhtml.Node) bool) {
	if n.Type == xhtml.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == xhtml.ElementNode && skip != nil && skip(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, skip)
	}
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *xhtml.Node) string {
	var b strings.Builder
	collectText(&b, n, nil)
	return b.String()
}
