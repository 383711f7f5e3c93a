// Package match turns free-text session and presentation titles into
// comparison keys and decides when two titles refer to the same item. The
// program JSON and the ConfTool export were authored independently, so the
// same title shows up with different dashes, quotes, spacing and the
// occasional typo.
package match

import (
	"html"
	"regexp"
	"strings"
)

var (
	dashRe        = regexp.MustCompile(`[\x{2012}\x{2013}\x{2014}\x{2015}]`)
	doubleQuoteRe = regexp.MustCompile(`[\x{201c}\x{201d}\x{201e}\x{201f}\x{00ab}\x{00bb}]`)
	singleQuoteRe = regexp.MustCompile(`[\x{2018}\x{2019}\x{201a}\x{201b}]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a title into a comparison key: HTML entities are
// decoded, dash and quote variants folded to their ASCII forms, whitespace
// collapsed, and the result lowercased. The output is only ever compared,
// never displayed.
func Normalize(title string) string {
	t := html.UnescapeString(title)
	t = dashRe.ReplaceAllString(t, "-")
	t = strings.ReplaceAll(t, "---", "-")
	t = doubleQuoteRe.ReplaceAllString(t, `"`)
	t = singleQuoteRe.ReplaceAllString(t, "'")
	t = whitespaceRe.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)
	return strings.ToLower(t)
}

var (
	daySlotRe     = regexp.MustCompile(`^(Mittwoch|Dienstag|Donnerstag|Freitag),?\s*(\d+(?::\d+)?)\s*:`)
	beforeColonRe = regexp.MustCompile(`^([^:]+):`)
)

// DeriveSessionID converts a ConfTool session label into the session_id
// format the program JSON uses.
//
//	"Workshop 1"                                          -> "Workshop 1"
//	"Mittwoch, 1:3: Mittwoch, 1:3 – Forschungsdatenstandards" -> "Mittwoch 1:3"
//	"Eröffnungskeynote: Eröffnungskeynote"                -> "Eröffnungskeynote"
//	"Promovierende Digital History"                       -> "Promovierende Digital History"
func DeriveSessionID(label string) string {
	if strings.HasPrefix(label, "Workshop") {
		return label
	}
	if m := daySlotRe.FindStringSubmatch(label); m != nil {
		return m[1] + " " + m[2]
	}
	if m := beforeColonRe.FindStringSubmatch(label); m != nil {
		return strings.TrimSpace(m[1])
	}
	return label
}
