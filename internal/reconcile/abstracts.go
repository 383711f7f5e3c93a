// Package reconcile aligns extracted ConfTool sessions and presentations
// with the structured program and merges the recovered fields in place.
// Matching runs a fixed fallback chain per item; the order is load-bearing,
// since swapping stages changes which near-ties win.
package reconcile

import (
	"strings"

	"github.com/jbrokmeier/tagungsplan/internal/conftool"
	"github.com/jbrokmeier/tagungsplan/internal/match"
	"github.com/jbrokmeier/tagungsplan/internal/models"
)

// AbstractsResult reports what one abstract enrichment pass did.
type AbstractsResult struct {
	// Added counts abstracts written to sessions or presentations.
	Added int
	// Unmatched lists labels of extracted sessions that carry at least one
	// non-empty abstract but never matched a program session. They are for
	// operator review, never auto-merged.
	Unmatched []string
}

// abstractEntry is one slot of the global title index. The index keeps the
// insertion order of first occurrence so fuzzy scans are deterministic;
// duplicate titles overwrite the stored abstract.
type abstractEntry struct {
	norm     string
	abstract string
}

type abstractIndex struct {
	entries []abstractEntry
	byNorm  map[string]int
}

func newAbstractIndex(extracted []conftool.Session) *abstractIndex {
	idx := &abstractIndex{byNorm: make(map[string]int)}
	for _, hs := range extracted {
		for _, p := range hs.Presentations {
			norm := match.Normalize(p.Title)
			if i, ok := idx.byNorm[norm]; ok {
				idx.entries[i].abstract = p.Abstract
				continue
			}
			idx.byNorm[norm] = len(idx.entries)
			idx.entries = append(idx.entries, abstractEntry{norm: norm, abstract: p.Abstract})
		}
	}
	return idx
}

// Abstracts merges extracted abstracts into the program. It first strips all
// previously derived abstracts so repeated runs produce identical output,
// then matches sessions and presentations per the fallback chain and mutates
// the program in place.
func Abstracts(p *models.Program, extracted []conftool.Session, threshold float64) AbstractsResult {
	p.StripAbstracts()

	var res AbstractsResult
	matched := make(map[string]bool)

	// session_id -> extracted session, in extraction order for the
	// normalized-id fallback scan.
	byID := make(map[string]*conftool.Session)
	var ids []string
	for i := range extracted {
		hs := &extracted[i]
		if hs.ID == "" {
			continue
		}
		if _, ok := byID[hs.ID]; !ok {
			ids = append(ids, hs.ID)
		}
		byID[hs.ID] = hs
	}

	global := newAbstractIndex(extracted)

	for _, day := range p.Days {
		for _, session := range day.Sessions {
			hs := matchSession(session, extracted, byID, ids)
			if hs == nil {
				continue
			}
			matched[hs.ID] = true

			if session.Presentations != nil {
				for _, pres := range session.Presentations {
					res.Added += addAbstract(pres, hs.Presentations, global, threshold)
				}
			} else {
				res.Added += promoteOrSynthesize(session, hs.Presentations)
			}
		}
	}

	for i := range extracted {
		hs := &extracted[i]
		if !matched[hs.ID] && hs.HasAbstract() {
			res.Unmatched = append(res.Unmatched, hs.Label)
		}
	}

	return res
}

// matchSession finds the extracted session for a program session: exact id,
// then normalized id, then (for sessions without a usable id match) first
// presentation title equality or label containment of the session title.
// First hit wins. Returns nil when nothing matches.
func matchSession(session *models.Session, extracted []conftool.Session, byID map[string]*conftool.Session, ids []string) *conftool.Session {
	if session.ID != "" {
		if hs, ok := byID[session.ID]; ok {
			return hs
		}
		// Comma and whitespace variance between the two datasets.
		want := match.Normalize(session.ID)
		for _, id := range ids {
			if match.Normalize(id) == want {
				return byID[id]
			}
		}
	}

	titleNorm := match.Normalize(session.Title)
	for i := range extracted {
		hs := &extracted[i]
		if len(hs.Presentations) > 0 &&
			match.Normalize(hs.Presentations[0].Title) == titleNorm {
			return hs
		}
		if titleNorm != "" && strings.Contains(match.Normalize(hs.Label), titleNorm) {
			return hs
		}
	}
	return nil
}

// addAbstract resolves one program presentation against the matched
// session's presentations, then against the global index: exact, fuzzy,
// global exact, global fuzzy. Returns 1 when an abstract was written. A
// title match with an empty abstract still resolves the presentation, so
// later stages don't get a chance to mismatch it.
func addAbstract(pres *models.Presentation, local []conftool.Presentation, global *abstractIndex, threshold float64) int {
	norm := match.Normalize(pres.Title)

	for _, hp := range local {
		if match.Normalize(hp.Title) == norm {
			if hp.Abstract != "" {
				pres.Abstract = hp.Abstract
				return 1
			}
			return 0
		}
	}

	for _, hp := range local {
		if match.Similar(norm, match.Normalize(hp.Title), threshold) {
			if hp.Abstract != "" {
				pres.Abstract = hp.Abstract
				return 1
			}
			return 0
		}
	}

	if i, ok := global.byNorm[norm]; ok {
		if global.entries[i].abstract != "" {
			pres.Abstract = global.entries[i].abstract
			return 1
		}
		// Resolved against the global index with nothing to add; fall
		// through to the fuzzy scan as the map hit carried no text.
	}

	for _, e := range global.entries {
		if match.Similar(norm, e.norm, threshold) {
			if e.abstract != "" {
				pres.Abstract = e.abstract
				return 1
			}
			return 0
		}
	}

	return 0
}

// promoteOrSynthesize handles sessions the program models as a single slot
// (workshops, panels, keynotes). A lone extracted abstract is promoted onto
// the session; with several extracted presentations the session's own title
// is tried first, and failing that a presentations array is synthesized, one
// entry per extracted talk. Returns the number of abstracts added.
func promoteOrSynthesize(session *models.Session, extracted []conftool.Presentation) int {
	if len(extracted) == 1 {
		if extracted[0].Abstract != "" {
			session.Abstract = extracted[0].Abstract
			return 1
		}
		return 0
	}
	if len(extracted) < 2 {
		return 0
	}

	titleNorm := match.Normalize(session.Title)
	for _, hp := range extracted {
		if titleNorm == match.Normalize(hp.Title) && hp.Abstract != "" {
			session.Abstract = hp.Abstract
			return 1
		}
	}

	// Poster and panel sessions: the program has one slot, the export lists
	// the individual talks.
	added := 0
	synthesized := make([]*models.Presentation, 0, len(extracted))
	for _, hp := range extracted {
		entry := &models.Presentation{Title: hp.Title}
		if hp.Abstract != "" {
			entry.Abstract = hp.Abstract
			added++
		}
		synthesized = append(synthesized, entry)
	}
	session.Presentations = synthesized
	return added
}
