// Package backend selects how a batch is screened. Both backends return
// identical results; they differ only in how the pairwise comparison runs.
package backend

import (
	"context"

	"github.com/agenthands/factscreen/internal/config"
	"github.com/agenthands/factscreen/internal/core/dedupe"
	"github.com/agenthands/factscreen/internal/core/model"
	"github.com/agenthands/factscreen/internal/core/validate"
)

type Backend interface {
	Name() string
	ValidateBatch(statements []string) []bool
	FindDuplicates(ctx context.Context, statements []string, threshold float64) ([]model.DuplicateMatch, error)
}

type Serial struct{}

func (Serial) Name() string { return "serial" }

func (Serial) ValidateBatch(statements []string) []bool {
	return validate.ValidateBatch(statements)
}

func (Serial) FindDuplicates(ctx context.Context, statements []string, threshold float64) ([]model.DuplicateMatch, error) {
	return dedupe.FindDuplicates(statements, threshold), nil
}

// Parallel fans the pairwise comparison out over Workers goroutines.
// Batches shorter than MinBatch run serially, where goroutine setup would
// cost more than it saves.
type Parallel struct {
	Workers  int
	MinBatch int
}

func (p Parallel) Name() string { return "parallel" }

func (p Parallel) ValidateBatch(statements []string) []bool {
	return validate.ValidateBatch(statements)
}

func (p Parallel) FindDuplicates(ctx context.Context, statements []string, threshold float64) ([]model.DuplicateMatch, error) {
	if len(statements) < p.MinBatch {
		return dedupe.FindDuplicates(statements, threshold), nil
	}
	return dedupe.FindDuplicatesParallel(ctx, statements, threshold, p.Workers)
}

// New returns the parallel backend when enabled in cfg, the serial one
// otherwise.
func New(cfg config.ScreenConfig) Backend {
	if cfg.ParallelEnabled {
		return Parallel{Workers: cfg.Workers, MinBatch: cfg.ParallelMinBatch}
	}
	return Serial{}
}
