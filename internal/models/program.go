package models

// Program is the structured conference program as stored in the program
// JSON file: ordered days, each owning ordered sessions.
type Program struct {
	Days []*Day `json:"days"`
}

// Day groups the sessions of one conference day.
type Day struct {
	Date     string     `json:"date,omitempty"`
	Weekday  string     `json:"weekday,omitempty"`
	Sessions []*Session `json:"sessions"`
}

// Session is one program slot. A session carries either a single Abstract
// (workshops, keynotes, panels modelled as one indivisible presentation) or
// a Presentations sequence; when Presentations is present it supersedes the
// session-level abstract.
type Session struct {
	ID            string          `json:"session_id,omitempty"`
	Title         string          `json:"title,omitempty"`
	Time          string          `json:"time,omitempty"`
	Location      string          `json:"location,omitempty"`
	Chair         string          `json:"chair,omitempty"`
	Abstract      string          `json:"abstract,omitempty"`
	Presentations []*Presentation `json:"presentations,omitempty"`
}

// Presentation is a single talk within a session. Authors, Affiliation and
// Abstract are derived fields recovered from the ConfTool export.
type Presentation struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Affiliation string   `json:"affiliation,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
}

// Counts summarizes how many abstracts the program currently carries. It is
// recomputed after every write as the round-trip self-check.
type Counts struct {
	Sessions              int
	Presentations         int
	SessionAbstracts      int
	PresentationAbstracts int
}

// Total returns the combined number of session- and presentation-level
// abstracts.
func (c Counts) Total() int {
	return c.SessionAbstracts + c.PresentationAbstracts
}

// Count walks the program and tallies sessions, presentations, and abstracts.
func (p *Program) Count() Counts {
	var c Counts
	for _, day := range p.Days {
		for _, s := range day.Sessions {
			c.Sessions++
			if s.Abstract != "" {
				c.SessionAbstracts++
			}
			for _, pres := range s.Presentations {
				c.Presentations++
				if pres.Abstract != "" {
					c.PresentationAbstracts++
				}
			}
		}
	}
	return c
}

// StripAbstracts removes every session- and presentation-level abstract so
// the abstract enrichment run is idempotent.
func (p *Program) StripAbstracts() {
	for _, day := range p.Days {
		for _, s := range day.Sessions {
			s.Abstract = ""
			for _, pres := range s.Presentations {
				pres.Abstract = ""
			}
		}
	}
}

// StripAuthors removes authors, affiliations and chairs, the fields the
// author enrichment run is responsible for adding.
func (p *Program) StripAuthors() {
	for _, day := range p.Days {
		for _, s := range day.Sessions {
			s.Chair = ""
			for _, pres := range s.Presentations {
				pres.Authors = nil
				pres.Affiliation = ""
			}
		}
	}
}
