// Package harvest pulls listing candidates and detail fields out of a page
// through every channel the site exposes: the embedded state tree, rendered
// DOM rows, and same-origin child frames. Sources disagree and overlap;
// everything funnels into one merged candidate set keyed by listing id.
package harvest

import "strings"

// Candidate is one listing observed on a list page, possibly only
// partially: a state-tree entry may lack an href, a bare anchor may lack a
// price. Partial observations of the same id merge.
type Candidate struct {
	ID        string
	Title     string
	PriceText string
	PriceNum  float64
	HasPrice  bool
	Href      string
	RowHTML   string
}

// Candidates accumulates candidates across harvest sources, preserving
// first-seen order per id. Fields merge last-non-empty-wins, so later
// richer sources fill gaps without erasing earlier values with blanks.
type Candidates struct {
	order []string
	byID  map[string]*Candidate

	// Unpaired holds price fragments seen without a resolvable id, kept
	// for diagnostics.
	Unpaired []string
}

// NewCandidates returns an empty accumulator.
func NewCandidates() *Candidates {
	return &Candidates{byID: make(map[string]*Candidate)}
}

// Add merges c into the set. Candidates without an id are ignored.
func (cs *Candidates) Add(c Candidate) {
	id := strings.TrimSpace(c.ID)
	if id == "" {
		return
	}
	cur, ok := cs.byID[id]
	if !ok {
		c.ID = id
		cs.byID[id] = &c
		cs.order = append(cs.order, id)
		return
	}
	if c.Title != "" {
		cur.Title = c.Title
	}
	if c.PriceText != "" {
		cur.PriceText = c.PriceText
	}
	if c.HasPrice {
		cur.PriceNum = c.PriceNum
		cur.HasPrice = true
	}
	if c.Href != "" {
		cur.Href = c.Href
	}
	if c.RowHTML != "" {
		cur.RowHTML = c.RowHTML
	}
}

// Merge folds another set into this one, keeping this set's ordering for
// ids both have seen.
func (cs *Candidates) Merge(other *Candidates) {
	if other == nil {
		return
	}
	for _, id := range other.order {
		cs.Add(*other.byID[id])
	}
	cs.Unpaired = append(cs.Unpaired, other.Unpaired...)
}

// Len is the number of distinct listing ids seen.
func (cs *Candidates) Len() int { return len(cs.order) }

// List returns the merged candidates in first-seen order.
func (cs *Candidates) List() []Candidate {
	out := make([]Candidate, 0, len(cs.order))
	for _, id := range cs.order {
		out = append(out, *cs.byID[id])
	}
	return out
}

// Get returns the candidate for id, if present.
func (cs *Candidates) Get(id string) (Candidate, bool) {
	c, ok := cs.byID[id]
	if !ok {
		return Candidate{}, false
	}
	return *c, true
}
