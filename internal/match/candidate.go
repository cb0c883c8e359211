package match

import (
	"sort"
)

// Candidate is a known word that a misspelled word may stand for.
type Candidate struct {
	Name  string
	Score float64 // normalized similarity (0-1)
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Rank scores every known word against word. Returns candidates sorted by
// score (descending). Exact matches are excluded.
func Rank(word string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, k := range known {
		if k == word {
			continue
		}

		candidates = append(candidates, Candidate{Name: k, Score: TagScore(word, k)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the names of at most n known words scoring at least
// minScore against word, best first.
func Suggest(word string, known []string, minScore float64, n int) []string {
	top := Rank(word, known).AboveThreshold(minScore).Top(n)

	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.Name
	}

	return names
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates with a score of at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// DefaultMinScore is the similarity from which a word is reported as a
// likely misspelling.
const DefaultMinScore = 0.6
