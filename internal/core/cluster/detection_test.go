package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/factscreen/internal/core/model"
)

// Two triangles {0,1,2} and {3,4,5} joined by a weak 2-3 bridge; 6 is alone.
func bridgedTriangles() []model.DuplicateMatch {
	return []model.DuplicateMatch{
		{I: 0, J: 1, Score: 1}, {I: 0, J: 2, Score: 0.9}, {I: 1, J: 2, Score: 1},
		{I: 2, J: 3, Score: 0.5},
		{I: 3, J: 4, Score: 1}, {I: 3, J: 5, Score: 0.8}, {I: 4, J: 5, Score: 1},
	}
}

func TestComponents_DisconnectedGroups(t *testing.T) {
	matches := []model.DuplicateMatch{
		{I: 4, J: 7, Score: 0.95},
		{I: 0, J: 1, Score: 1}, {I: 1, J: 2, Score: 0.96},
	}

	clusters := NewComponentDetector().Detect(8, matches)

	assert.Equal(t, []model.DuplicateCluster{
		{Members: []int{0, 1, 2}, MinScore: 0.96, MaxScore: 1},
		{Members: []int{4, 7}, MinScore: 0.95, MaxScore: 0.95},
	}, clusters)
}

func TestComponents_BridgeChainsGroups(t *testing.T) {
	clusters := NewComponentDetector().Detect(7, bridgedTriangles())

	require.Len(t, clusters, 1)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, clusters[0].Members)
	assert.Equal(t, 0.5, clusters[0].MinScore)
	assert.Equal(t, 1.0, clusters[0].MaxScore)
}

func TestComponents_IgnoresOutOfRange(t *testing.T) {
	clusters := NewComponentDetector().Detect(2, []model.DuplicateMatch{{I: 0, J: 5, Score: 1}, {I: 1, J: 1, Score: 1}})
	assert.Empty(t, clusters)
	assert.NotNil(t, clusters)
}

func TestComponents_NoMatches(t *testing.T) {
	assert.Empty(t, NewComponentDetector().Detect(10, nil))
}
