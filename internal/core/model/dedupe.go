package model

import "sort"

// DuplicateMatch is one near-duplicate pair. I < J always holds.
type DuplicateMatch struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Score float64 `json:"score"`
}

type DuplicateCluster struct {
	Members  []int   `json:"members"`
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`
}

type Contradiction struct {
	Positive  int    `json:"positive"`
	Negative  int    `json:"negative"`
	Predicate string `json:"predicate"`
}

// RankByScore returns a copy ordered by score descending, then (i, j).
// Display only; the finder itself always returns index order.
func RankByScore(matches []DuplicateMatch) []DuplicateMatch {
	ranked := make([]DuplicateMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Score != ranked[b].Score {
			return ranked[a].Score > ranked[b].Score
		}
		if ranked[a].I != ranked[b].I {
			return ranked[a].I < ranked[b].I
		}
		return ranked[a].J < ranked[b].J
	})
	return ranked
}
