package cluster

import (
	"github.com/agenthands/factscreen/internal/core/model"
)

// LabelPropagationDetector clusters with score-weighted label propagation.
// Unlike ComponentDetector it does not chain A~B~C into one cluster when the
// A-B and B-C ties are weaker than the ties inside their own groups.
type LabelPropagationDetector struct {
	MaxIterations int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
	}
}

func (d *LabelPropagationDetector) Detect(n int, matches []model.DuplicateMatch) []model.DuplicateCluster {
	adj := adjacency(n, matches)
	if len(adj) == 0 {
		return []model.DuplicateCluster{}
	}

	// Each node starts with its own index as label.
	labels := make(map[int]int, len(adj))
	for u := range adj {
		labels[u] = u
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		// Ascending index order keeps the result deterministic.
		for u := 0; u < n; u++ {
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			weights := make(map[int]float64)
			for v, score := range neighbors {
				weights[labels[v]] += score
			}

			// Heaviest label wins; ties go to the smallest label.
			best, bestWeight := -1, -1.0
			for label, w := range weights {
				if w > bestWeight || (w == bestWeight && label < best) {
					best, bestWeight = label, w
				}
			}

			if labels[u] != best {
				labels[u] = best
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	groups := make(map[int][]int)
	for u, label := range labels {
		groups[label] = append(groups[label], u)
	}
	return buildClusters(groups, matches)
}
