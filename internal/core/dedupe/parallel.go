package dedupe

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/factscreen/internal/core/model"
)

type rowRange struct {
	lo, hi int
}

// FindDuplicatesParallel returns exactly what FindDuplicates returns, with
// the outer index split into contiguous ranges, one goroutine per range.
// Fragments are concatenated in range order, which keeps (i, j) order.
// workers <= 0 uses GOMAXPROCS.
func FindDuplicatesParallel(ctx context.Context, statements []string, threshold float64, workers int) ([]model.DuplicateMatch, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	t := ClampThreshold(threshold)
	sets := tokenizeAll(statements)

	ranges := partitionRows(len(sets), workers)
	fragments := make([][]model.DuplicateMatch, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for k, r := range ranges {
		k, r := k, r
		g.Go(func() error {
			var frag []model.DuplicateMatch
			for i := r.lo; i < r.hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				frag = appendRow(frag, sets, i, t)
			}
			fragments[k] = frag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, f := range fragments {
		total += len(f)
	}
	matches := make([]model.DuplicateMatch, 0, total)
	for _, f := range fragments {
		matches = append(matches, f...)
	}
	return matches, nil
}

// partitionRows splits rows [0, n) into at most workers contiguous ranges
// holding roughly the same number of pairs. Row i owns n-1-i pairs, so
// early ranges are shorter.
func partitionRows(n, workers int) []rowRange {
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	totalPairs := n * (n - 1) / 2
	target := (totalPairs + workers - 1) / workers

	ranges := make([]rowRange, 0, workers)
	lo, acc := 0, 0
	for i := 0; i < n; i++ {
		acc += n - 1 - i
		if acc >= target && len(ranges) < workers-1 {
			ranges = append(ranges, rowRange{lo: lo, hi: i + 1})
			lo, acc = i+1, 0
		}
	}
	if lo < n {
		ranges = append(ranges, rowRange{lo: lo, hi: n})
	}
	return ranges
}
