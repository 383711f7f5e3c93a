package reconcile

import (
	"strings"

	"github.com/jbrokmeier/tagungsplan/internal/conftool"
	"github.com/jbrokmeier/tagungsplan/internal/match"
	"github.com/jbrokmeier/tagungsplan/internal/models"
)

// ChairAssignment records one chair written to a session.
type ChairAssignment struct {
	SessionID string
	Chair     string
}

// AuthorsResult reports what one author enrichment pass did.
type AuthorsResult struct {
	// AuthorsAdded counts presentations that received an author list.
	AuthorsAdded int
	// Chairs lists the chair assignments in program order.
	Chairs []ChairAssignment
	// Unmatched lists presentation titles no author record could be found
	// for. Each is a warning for the operator; the presentation is left
	// without authors.
	Unmatched []string
}

type authorEntry struct {
	norm string
	rec  conftool.AuthorRecord
}

// authorIndex maps normalized titles to author records, keeping first-seen
// order for deterministic fuzzy scans; duplicates overwrite the record.
type authorIndex struct {
	entries []authorEntry
	byNorm  map[string]int
}

func newAuthorIndex(records []conftool.AuthorRecord) *authorIndex {
	idx := &authorIndex{byNorm: make(map[string]int)}
	for _, rec := range records {
		norm := match.Normalize(rec.Title)
		if i, ok := idx.byNorm[norm]; ok {
			idx.entries[i].rec = rec
			continue
		}
		idx.byNorm[norm] = len(idx.entries)
		idx.entries = append(idx.entries, authorEntry{norm: norm, rec: rec})
	}
	return idx
}

// Authors merges extracted authors, affiliations and chairs into the
// program. Previously derived author fields are stripped first so the run
// is idempotent; the program is mutated in place.
func Authors(p *models.Program, records []conftool.AuthorRecord, chairs []conftool.Chair, threshold float64) AuthorsResult {
	p.StripAuthors()

	var res AuthorsResult
	idx := newAuthorIndex(records)

	for _, day := range p.Days {
		for _, session := range day.Sessions {
			if session.ID != "" && session.Chair == "" {
				for _, ch := range chairs {
					if match.DeriveSessionID(ch.Label) == session.ID {
						session.Chair = ch.Name
						res.Chairs = append(res.Chairs, ChairAssignment{
							SessionID: session.ID,
							Chair:     ch.Name,
						})
						break
					}
				}
			}

			for _, pres := range session.Presentations {
				norm := match.Normalize(pres.Title)
				if norm == "" {
					continue
				}
				if rec, ok := idx.lookup(norm, threshold); ok {
					applyAuthors(pres, rec)
					res.AuthorsAdded++
				} else {
					res.Unmatched = append(res.Unmatched, pres.Title)
				}
			}
		}
	}

	return res
}

// lookup resolves a normalized title against the index: exact first, then
// the fuzzy scan in insertion order.
func (idx *authorIndex) lookup(norm string, threshold float64) (conftool.AuthorRecord, bool) {
	if i, ok := idx.byNorm[norm]; ok {
		return idx.entries[i].rec, true
	}
	for _, e := range idx.entries {
		if match.Similar(norm, e.norm, threshold) {
			return e.rec, true
		}
	}
	return conftool.AuthorRecord{}, false
}

func applyAuthors(pres *models.Presentation, rec conftool.AuthorRecord) {
	pres.Authors = rec.Authors
	if len(rec.Affiliations) > 0 {
		pres.Affiliation = strings.Join(rec.Affiliations, "; ")
	}
}
