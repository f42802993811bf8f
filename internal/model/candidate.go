package model

import "sort"

// ClassificationCandidate is one possible code for a product, with the
// heuristic score and the reasons behind it. Candidates are ephemeral
// and recomputed per request; MatchScore is in heuristic units, not a
// probability, and may be negative.
type ClassificationCandidate struct {
	HtsCode       string
	Description   string
	Level         Level
	GeneralRate   string
	MatchScore    float64
	MatchReasons  []string
	Uncertainties []string
}

// Candidates is a scored candidate list supporting deterministic ranking.
type Candidates []ClassificationCandidate

// Len implements sort.Interface.
func (c Candidates) Len() int { return len(c) }

// Less implements sort.Interface: higher scores first, then deeper
// hierarchy levels, then lexical code order. The full chain makes the
// ordering reproducible for identical inputs.
func (c Candidates) Less(i, j int) bool {
	if c[i].MatchScore != c[j].MatchScore {
		return c[i].MatchScore > c[j].MatchScore
	}
	if c[i].Level.Depth() != c[j].Level.Depth() {
		return c[i].Level.Depth() > c[j].Level.Depth()
	}
	return c[i].HtsCode < c[j].HtsCode
}

// Swap implements sort.Interface.
func (c Candidates) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Sort orders the candidates by rank.
func (c Candidates) Sort() { sort.Sort(c) }

// Top returns the highest-ranked candidate, or nil if empty.
func (c Candidates) Top() *ClassificationCandidate {
	if len(c) == 0 {
		return nil
	}
	c.Sort()
	return &c[0]
}

// TopN returns the N highest-ranked candidates.
func (c Candidates) TopN(n int) Candidates {
	if n <= 0 {
		return Candidates{}
	}
	c.Sort()
	if n > len(c) {
		n = len(c)
	}
	out := make(Candidates, n)
	copy(out, c[:n])
	return out
}
