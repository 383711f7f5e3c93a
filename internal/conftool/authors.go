package conftool

import (
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

var (
	authorRe = regexp.MustCompile(`(?s)<p\s+class="paper_author">(.*?)</p>`)
	orgRe    = regexp.MustCompile(`(?s)<p\s+class="paper_organisation">(.*?)</p>`)
	chairRe  = regexp.MustCompile(`(?s)Chair der Sitzung:\s*</span>\s*<span[^>]*>(.*?)</span>`)
)

// AuthorRecord holds the author and affiliation lists recovered for one
// presentation title.
type AuthorRecord struct {
	Title        string
	Authors      []string
	Affiliations []string
}

// Chair pairs a session label with the chair name found in its block.
type Chair struct {
	Label string
	Name  string
}

// ExtractAuthors recovers authors and affiliations for every presentation
// in the export, in source order. Items without an author paragraph are
// dropped; they are organisational entries, not papers.
func ExtractAuthors(export string) []AuthorRecord {
	var records []AuthorRecord
	for _, part := range paperMarkerRe.Split(export, -1)[1:] {
		tm := titleRe.FindStringSubmatch(part)
		if tm == nil {
			continue
		}
		am := authorRe.FindStringSubmatch(part)
		if am == nil {
			continue
		}

		rec := AuthorRecord{
			Title:   StripMarkup(tm[1]),
			Authors: authorNames(am[1]),
		}
		if om := orgRe.FindStringSubmatch(part); om != nil {
			rec.Affiliations = affiliationList(om[1])
		}
		records = append(records, rec)
	}
	return records
}

// ExtractChairs recovers the session chairs, in source order. ConfTool
// renders them as a fixed "Chair der Sitzung:" label followed by the name
// in the next span.
func ExtractChairs(export string) []Chair {
	var chairs []Chair
	for _, block := range sessionBlocks(export) {
		label := blockLabel(block)
		if label == "" {
			continue
		}
		m := chairRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		chairs = append(chairs, Chair{Label: label, Name: StripMarkup(m[1])})
	}
	return chairs
}

// authorNames parses the author paragraph into individual names. Superscript
// footnote markers are dropped with their content (they can contain commas,
// e.g. <sup>1, 2</sup>), underline markup contributes its text, and the
// remainder is split on commas.
func authorNames(fragment string) []string {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return nil
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n, func(e *xhtml.Node) bool { return e.Data == "sup" })
	}

	var names []string
	for _, chunk := range strings.Split(b.String(), ",") {
		if name := strings.TrimSpace(chunk); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// affiliationList parses the organisation paragraph. Each numbered
// superscript marker starts a new affiliation; pieces are trimmed, trailing
// semicolons stripped, empties discarded.
func affiliationList(fragment string) []string {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return nil
	}

	// Numeric <sup> markers become a separator token that cannot occur in
	// affiliation text.
	const sep = "\x00"
	var b strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			b.WriteString(n.Data)
			return
		}
		if n.Type == xhtml.ElementNode && n.Data == "sup" && isDigits(textContent(n)) {
			b.WriteString(sep)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	var affiliations []string
	for _, chunk := range strings.Split(b.String(), sep) {
		chunk = strings.TrimSpace(chunk)
		chunk = strings.TrimSpace(strings.TrimSuffix(chunk, ";"))
		if chunk != "" {
			affiliations = append(affiliations, chunk)
		}
	}
	return affiliations
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
