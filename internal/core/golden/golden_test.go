package golden

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/factscreen/internal/core/backend"
	"github.com/agenthands/factscreen/internal/core/dedupe"
	"github.com/agenthands/factscreen/internal/core/model"
)

// skewedBackend drops every other duplicate and flips validation of index 0.
type skewedBackend struct {
	backend.Serial
	err error
}

func (skewedBackend) Name() string { return "skewed" }

func (s skewedBackend) ValidateBatch(statements []string) []bool {
	out := s.Serial.ValidateBatch(statements)
	if len(out) > 0 {
		out[0] = !out[0]
	}
	return out
}

func (s skewedBackend) FindDuplicates(ctx context.Context, statements []string, threshold float64) ([]model.DuplicateMatch, error) {
	if s.err != nil {
		return nil, s.err
	}
	all, _ := s.Serial.FindDuplicates(ctx, statements, threshold)
	var kept []model.DuplicateMatch
	for k, m := range all {
		if k%2 == 1 {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

func batch() []string {
	return []string{
		"Likes(a, b).",
		"Likes(a, b).",
		"Likes(a, b).",
		"Knows(x, y).",
		"Knows(x, y).",
		"broken",
	}
}

func TestCompare_SerialVsParallel(t *testing.T) {
	report, err := Compare(context.Background(), backend.Serial{}, backend.Parallel{Workers: 3}, batch(), 0, dedupe.DefaultThreshold)
	require.NoError(t, err)

	assert.True(t, report.Equal())
	assert.Equal(t, "serial", report.BackendA)
	assert.Equal(t, "parallel", report.BackendB)
	assert.Equal(t, 6, report.Validate.Total)
	assert.Equal(t, 6, report.Duplicates.Sample)
	assert.Equal(t, 4, report.Duplicates.PairsA)
	assert.Equal(t, 4, report.Duplicates.PairsB)
	assert.Empty(t, report.Duplicates.OnlyAPreview)
}

func TestCompare_ReportsDifferences(t *testing.T) {
	report, err := Compare(context.Background(), backend.Serial{}, skewedBackend{}, batch(), 0, dedupe.DefaultThreshold)
	require.NoError(t, err)

	assert.False(t, report.Equal())
	assert.Equal(t, 1, report.Validate.Mismatches)
	assert.Equal(t, []int{0}, report.Validate.MismatchesPreview)
	// Serial order: (0,1) (0,2) (1,2) (3,4); the skewed backend keeps (0,2) and (3,4).
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, report.Duplicates.OnlyAPreview)
	assert.Empty(t, report.Duplicates.OnlyBPreview)
}

func TestCompare_SampleLimitsDuplicates(t *testing.T) {
	report, err := Compare(context.Background(), backend.Serial{}, backend.Serial{}, batch(), 2, dedupe.DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 6, report.Validate.Total)
	assert.Equal(t, 2, report.Duplicates.Sample)
	assert.Equal(t, 1, report.Duplicates.PairsA)
}

func TestCompare_BackendError(t *testing.T) {
	_, err := Compare(context.Background(), backend.Serial{}, skewedBackend{err: errors.New("boom")}, batch(), 0, dedupe.DefaultThreshold)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skewed")
}

func TestDifference_CapsPreview(t *testing.T) {
	a := map[[2]int]struct{}{}
	for i := 0; i < 80; i++ {
		a[[2]int{i, i + 1}] = struct{}{}
	}
	out := difference(a, map[[2]int]struct{}{})
	require.Len(t, out, previewLimit)
	assert.Equal(t, [2]int{0, 1}, out[0])
}

func TestReport_Rendering(t *testing.T) {
	report, err := Compare(context.Background(), backend.Serial{}, skewedBackend{}, batch(), 0, dedupe.DefaultThreshold)
	require.NoError(t, err)

	md := report.Markdown()
	assert.Contains(t, md, "# Golden Comparison: serial vs skewed")
	assert.Contains(t, md, "**MISMATCH**")
	assert.Contains(t, md, "| Validation mismatches | 1 |")
	assert.Contains(t, md, `"only_a_preview"`)

	html, err := report.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, fmt.Sprintf("<h1>Golden Comparison: %s vs %s</h1>", "serial", "skewed"))
	assert.Contains(t, html, "<strong>MISMATCH</strong>")
}
