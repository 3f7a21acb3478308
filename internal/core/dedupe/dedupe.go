// Package dedupe finds near-duplicate fact statements in a batch by Jaccard
// similarity of their token sets, and flags predicate/negation pairs that
// contradict each other.
//
// Every unordered pair is compared, so a batch of n statements costs
// n(n-1)/2 comparisons. That is a known scaling limit of this package; it
// does not approximate. FindDuplicatesParallel spreads the same work across
// goroutines without changing the result.
package dedupe

import (
	"math"

	"github.com/agenthands/factscreen/internal/core/model"
)

const DefaultThreshold = 0.95

// ClampThreshold maps a threshold into [0, 1]. NaN maps to 1, the most
// conservative setting.
func ClampThreshold(threshold float64) float64 {
	switch {
	case math.IsNaN(threshold):
		return 1
	case threshold < 0:
		return 0
	case threshold > 1:
		return 1
	}
	return threshold
}

// FindDuplicates compares every pair i < j of statements with non-empty
// token sets and returns those scoring at least the clamped threshold,
// ordered by i then j.
func FindDuplicates(statements []string, threshold float64) []model.DuplicateMatch {
	t := ClampThreshold(threshold)
	sets := tokenizeAll(statements)

	matches := make([]model.DuplicateMatch, 0)
	for i := range sets {
		matches = appendRow(matches, sets, i, t)
	}
	return matches
}

func tokenizeAll(statements []string) []TokenSet {
	sets := make([]TokenSet, len(statements))
	for i, s := range statements {
		sets[i] = Tokenize(s)
	}
	return sets
}

// appendRow appends the matches (i, j) for every j > i.
func appendRow(dst []model.DuplicateMatch, sets []TokenSet, i int, threshold float64) []model.DuplicateMatch {
	if len(sets[i]) == 0 {
		return dst
	}
	for j := i + 1; j < len(sets); j++ {
		if len(sets[j]) == 0 {
			continue
		}
		if score := Jaccard(sets[i], sets[j]); score >= threshold {
			dst = append(dst, model.DuplicateMatch{I: i, J: j, Score: score})
		}
	}
	return dst
}
