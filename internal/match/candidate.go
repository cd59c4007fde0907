package match

import (
	"cmp"
	"slices"
)

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name       string
	Normalized string
	// Score is the normalized Levenshtein similarity (0-1).
	Score float64
}

// CandidateList is a list of candidates sorted by descending score.
type CandidateList []Candidate

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum similarity for a name to be proposed.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps how many names one diagnostic proposes.
	DefaultMaxSuggestions = 3
)

// RankCandidates scores every known name against name.
// Ties are broken alphabetically so the result is deterministic.
func RankCandidates(name string, known []string) CandidateList {
	norm := NormalizeIdent(name)

	res := make(CandidateList, 0, len(known))
	for _, k := range known {
		kn := NormalizeIdent(k)
		res = append(res, Candidate{
			Name:       k,
			Normalized: kn,
			Score:      LevenshteinNormalized(norm, kn),
		})
	}

	slices.SortFunc(res, func(a, b Candidate) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Name, b.Name))
	})

	return res
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Names returns candidate names in order.
func (c CandidateList) Names() []string {
	res := make([]string, 0, len(c))
	for _, cand := range c {
		res = append(res, cand.Name)
	}

	return res
}

// Suggest returns up to DefaultMaxSuggestions known names close to name.
// An exact match is never suggested.
func Suggest(name string, known []string) []string {
	var pool []string

	for _, k := range known {
		if k != name {
			pool = append(pool, k)
		}
	}

	return RankCandidates(name, pool).
		AboveThreshold(DefaultMinScore).
		Top(DefaultMaxSuggestions).
		Names()
}
