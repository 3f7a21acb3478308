package dedupe

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/factscreen/internal/core/model"
)

func TestFindDuplicates_IdenticalStatements(t *testing.T) {
	statements := []string{"Likes(a, b).", "Likes(a, b).", "Loves(x, y)."}

	matches := FindDuplicates(statements, 0.9)

	require.Len(t, matches, 1)
	assert.Equal(t, model.DuplicateMatch{I: 0, J: 1, Score: 1.0}, matches[0])
}

func TestFindDuplicates_EmptyTokenSetsExcluded(t *testing.T) {
	statements := []string{"(),.,", "(),.,", "Likes(a, b)."}

	for _, threshold := range []float64{-1, 0, 0.5, 1} {
		matches := FindDuplicates(statements, threshold)
		for _, m := range matches {
			assert.NotEqual(t, 0, m.I, "threshold %v", threshold)
			assert.NotEqual(t, 1, m.I, "threshold %v", threshold)
			assert.NotEqual(t, 1, m.J, "threshold %v", threshold)
		}
	}
	assert.Empty(t, FindDuplicates(statements, 0))
}

func TestFindDuplicates_ZeroThresholdReportsAllNonEmptyPairs(t *testing.T) {
	statements := []string{"A(b, c).", "...", "X(y, z).", "A(q, r)."}

	matches := FindDuplicates(statements, 0)

	assert.Equal(t, []model.DuplicateMatch{
		{I: 0, J: 2, Score: 0},
		{I: 0, J: 3, Score: 0.2},
		{I: 2, J: 3, Score: 0},
	}, matches)
}

func TestFindDuplicates_ThresholdClamping(t *testing.T) {
	statements := randomBatch(rand.New(rand.NewSource(7)), 60)

	assert.Equal(t, FindDuplicates(statements, 1.0), FindDuplicates(statements, 5.0))
	assert.Equal(t, FindDuplicates(statements, 0.0), FindDuplicates(statements, -3.0))
	assert.Equal(t, FindDuplicates(statements, 1.0), FindDuplicates(statements, math.Inf(1)))
	assert.Equal(t, FindDuplicates(statements, 0.0), FindDuplicates(statements, math.Inf(-1)))
	assert.Equal(t, FindDuplicates(statements, 1.0), FindDuplicates(statements, math.NaN()))
}

func TestFindDuplicates_CaseSensitiveTokens(t *testing.T) {
	matches := FindDuplicates([]string{"Likes(A, B).", "likes(a, b)."}, 0)

	require.Len(t, matches, 1)
	assert.Equal(t, 0.0, matches[0].Score)
}

func TestFindDuplicates_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		statements := randomBatch(rng, 40)
		threshold := rng.Float64()

		matches := FindDuplicates(statements, threshold)

		prevI, prevJ := -1, -1
		for _, m := range matches {
			assert.True(t, 0 <= m.I && m.I < m.J && m.J < len(statements), "bad indices %+v", m)
			assert.True(t, m.Score >= threshold && m.Score <= 1, "bad score %+v", m)
			assert.True(t, m.I > prevI || (m.I == prevI && m.J > prevJ), "out of order %+v", m)
			prevI, prevJ = m.I, m.J
		}

		assert.Equal(t, matches, FindDuplicates(statements, threshold), "not idempotent")
	}
}

func TestFindDuplicates_IdenticalPairsAlwaysMatch(t *testing.T) {
	statements := []string{"Fact(x, y).", "Other(p, q).", "Fact(x, y)."}

	for _, threshold := range []float64{0, 0.5, 0.99, 1} {
		assert.Contains(t, FindDuplicates(statements, threshold), model.DuplicateMatch{I: 0, J: 2, Score: 1}, "threshold %v", threshold)
	}
}

func TestFindDuplicates_EmptyInput(t *testing.T) {
	assert.Empty(t, FindDuplicates(nil, 0.5))
	assert.Empty(t, FindDuplicates([]string{"Only(one, fact)."}, 0))
}

func TestClampThreshold(t *testing.T) {
	assert.Equal(t, 0.0, ClampThreshold(-3))
	assert.Equal(t, 1.0, ClampThreshold(5))
	assert.Equal(t, 0.42, ClampThreshold(0.42))
	assert.Equal(t, 1.0, ClampThreshold(math.NaN()))
}

var vocabulary = []string{"Likes", "Loves", "HasProperty", "a", "b", "x", "y", "socrates", "mortal", "IsA", "human"}

// randomBatch builds fact-shaped statements over a small vocabulary so
// that collisions and partial overlaps are common.
func randomBatch(rng *rand.Rand, n int) []string {
	out := make([]string, n)
	for i := range out {
		switch rng.Intn(8) {
		case 0:
			out[i] = "(),.,"
		case 1:
			out[i] = ""
		default:
			out[i] = fmt.Sprintf("%s(%s, %s).",
				vocabulary[rng.Intn(3)],
				vocabulary[3+rng.Intn(len(vocabulary)-3)],
				vocabulary[3+rng.Intn(len(vocabulary)-3)])
		}
	}
	return out
}
