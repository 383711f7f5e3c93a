// Package conftool parses the ConfTool HTML program export. The export is
// tag soup, but it keeps a fixed structural convention: one
// `<tbody id='session_N'>` marker per session block, one
// `<div id='paperIDN'>` marker per presentation, and CSS-class-tagged
// paragraphs for titles, abstracts, authors and organisations. Blocks are
// located positionally on the raw export string; individual fields are then
// parsed as HTML fragments to strip markup and decode entities.
//
// Everything produced here is transient: records live for one enrichment
// pass and are discarded after their fields are merged into the program.
package conftool

import (
	"html"
	"regexp"
	"strings"

	"github.com/jbrokmeier/tagungsplan/internal/match"
)

// Session is one extracted session block.
type Session struct {
	// Label is the bold text that opens the block, e.g.
	// "Mittwoch, 1:3: Mittwoch, 1:3 – Forschungsdatenstandards".
	Label string
	// ID is the session identifier derived from the label, matching the
	// session_id format of the program JSON.
	ID string
	// Presentations are the papers listed inside the block, in source order.
	Presentations []Presentation
}

// Presentation is one extracted paper.
type Presentation struct {
	Title        string
	Abstract     string   // paragraphs joined with newline, may be empty
	Authors      []string // author variant only
	Affiliations []string // author variant only
}

// HasAbstract reports whether any presentation in the session carries a
// non-empty abstract.
func (s *Session) HasAbstract() bool {
	for _, p := range s.Presentations {
		if p.Abstract != "" {
			return true
		}
	}
	return false
}

var (
	sessionMarkerRe = regexp.MustCompile(`(?i)<tbody\s+id='session_\d+'\s*>`)
	paperMarkerRe   = regexp.MustCompile(`<div\s+id='paperID\d+'>`)
	boldRe          = regexp.MustCompile(`<b>([^<]+)</b>`)
	titleRe         = regexp.MustCompile(`(?s)<p\s+class="paper_title">(.*?)</p>`)
	abstractRe      = regexp.MustCompile(`(?s)<p\s+class="paper_abstract">(.*?)</p>`)
)

// nonContentLabels are block labels that never carry presentations.
var nonContentLabels = map[string]bool{
	"Kaffeepause":  true,
	"Mittagspause": true,
}

// sessionBlocks splits the export into per-session chunks. A block spans
// from one session marker to the next (or to the end of the input).
func sessionBlocks(export string) []string {
	locs := sessionMarkerRe.FindAllStringIndex(export, -1)
	blocks := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(export)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, export[loc[0]:end])
	}
	return blocks
}

// blockLabel returns the first bold-emphasized text in a block, entity
// decoded and trimmed. The empty string means the block has no label and
// should be dropped.
func blockLabel(block string) string {
	m := boldRe.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return html.UnescapeString(strings.TrimSpace(m[1]))
}

// skipLabel reports whether a block label marks a non-session block: date
// separators and breaks carry no presentations.
func skipLabel(label string) bool {
	return strings.HasPrefix(label, "Datum:") || nonContentLabels[label]
}

// ExtractSessions extracts every session block with its presentations and
// abstracts from the export.
func ExtractSessions(export string) []Session {
	var sessions []Session
	for _, block := range sessionBlocks(export) {
		label := blockLabel(block)
		if label == "" || skipLabel(label) {
			continue
		}
		sessions = append(sessions, Session{
			Label:         label,
			ID:            match.DeriveSessionID(label),
			Presentations: presentationsFromBlock(block),
		})
	}
	return sessions
}

// presentationsFromBlock extracts (title, abstract) pairs from one session
// block. Items without a locatable title are dropped; abstract paragraphs
// are stripped of markup, empty ones discarded, the rest joined with a
// newline.
func presentationsFromBlock(block string) []Presentation {
	var out []Presentation
	for _, part := range paperMarkerRe.Split(block, -1)[1:] {
		tm := titleRe.FindStringSubmatch(part)
		if tm == nil {
			continue
		}
		title := StripMarkup(tm[1])

		var paragraphs []string
		for _, am := range abstractRe.FindAllStringSubmatch(part, -1) {
			if strings.TrimSpace(am[1]) == "" {
				continue
			}
			if text := StripMarkup(am[1]); text != "" {
				paragraphs = append(paragraphs, text)
			}
		}

		out = append(out, Presentation{
			Title:    title,
			Abstract: strings.Join(paragraphs, "\n"),
		})
	}
	return out
}
