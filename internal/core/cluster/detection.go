package cluster

import (
	"sort"

	"github.com/agenthands/factscreen/internal/core/model"
)

// Detector groups the statements of one batch into duplicate clusters using
// the batch's duplicate matches as weighted, undirected edges.
type Detector interface {
	Detect(n int, matches []model.DuplicateMatch) []model.DuplicateCluster
}

// ComponentDetector treats near-duplication as transitive: every connected
// component of the match graph is one cluster.
type ComponentDetector struct{}

func NewComponentDetector() Detector {
	return &ComponentDetector{}
}

func (d *ComponentDetector) Detect(n int, matches []model.DuplicateMatch) []model.DuplicateCluster {
	adj := adjacency(n, matches)

	visited := make(map[int]bool)
	groups := make(map[int][]int)

	// Iterate in index order so each component is keyed by its smallest member.
	for u := 0; u < n; u++ {
		if visited[u] || len(adj[u]) == 0 {
			continue
		}
		var component []int
		d.dfs(u, adj, visited, &component)
		groups[u] = component
	}

	return buildClusters(groups, matches)
}

func (d *ComponentDetector) dfs(u int, adj map[int]map[int]float64, visited map[int]bool, component *[]int) {
	visited[u] = true
	*component = append(*component, u)
	for v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}

// adjacency builds node -> neighbor -> score, ignoring out-of-range indices.
func adjacency(n int, matches []model.DuplicateMatch) map[int]map[int]float64 {
	adj := make(map[int]map[int]float64)
	for _, m := range matches {
		if m.I < 0 || m.J < 0 || m.I >= n || m.J >= n || m.I == m.J {
			continue
		}
		if adj[m.I] == nil {
			adj[m.I] = make(map[int]float64)
		}
		if adj[m.J] == nil {
			adj[m.J] = make(map[int]float64)
		}
		adj[m.I][m.J] = m.Score
		adj[m.J][m.I] = m.Score
	}
	return adj
}

// buildClusters drops singletons, sorts members and orders clusters by
// their smallest member. Score bounds cover matches inside each cluster.
func buildClusters(groups map[int][]int, matches []model.DuplicateMatch) []model.DuplicateCluster {
	owner := make(map[int]int)
	var clusters []model.DuplicateCluster
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		sorted := append([]int(nil), members...)
		sort.Ints(sorted)
		for _, m := range sorted {
			owner[m] = len(clusters)
		}
		clusters = append(clusters, model.DuplicateCluster{Members: sorted, MinScore: -1})
	}

	for _, m := range matches {
		ci, okI := owner[m.I]
		cj, okJ := owner[m.J]
		if !okI || !okJ || ci != cj {
			continue
		}
		c := &clusters[ci]
		if c.MinScore < 0 || m.Score < c.MinScore {
			c.MinScore = m.Score
		}
		if m.Score > c.MaxScore {
			c.MaxScore = m.Score
		}
	}

	for i := range clusters {
		if clusters[i].MinScore < 0 {
			clusters[i].MinScore = 0
		}
	}
	sort.Slice(clusters, func(a, b int) bool {
		return clusters[a].Members[0] < clusters[b].Members[0]
	})
	if clusters == nil {
		clusters = []model.DuplicateCluster{}
	}
	return clusters
}
