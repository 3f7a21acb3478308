package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/factscreen/internal/config"
	"github.com/agenthands/factscreen/internal/core/backend"
	"github.com/agenthands/factscreen/internal/core/cluster"
	"github.com/agenthands/factscreen/internal/core/dedupe"
	"github.com/agenthands/factscreen/internal/core/golden"
	"github.com/agenthands/factscreen/internal/core/model"
	"github.com/agenthands/factscreen/internal/core/repair"
	"github.com/agenthands/factscreen/internal/core/validate"
	"github.com/agenthands/factscreen/internal/driver"
	"github.com/agenthands/factscreen/internal/llm"
)

// Screener runs validation, duplicate detection and the derived checks over
// a batch of statements. Source and Repairer are optional.
type Screener struct {
	Backend   backend.Backend
	Source    driver.FactSource
	Repairer  *repair.Repairer
	Clusterer cluster.Detector
	Config    config.ScreenConfig
	Log       *zap.Logger
}

func NewScreener(cfg *config.Config, source driver.FactSource, llmClient llm.LLMClient, log *zap.Logger) *Screener {
	if log == nil {
		log = zap.NewNop()
	}

	var clusterer cluster.Detector
	switch cfg.Screen.Clustering {
	case "lpa":
		clusterer = cluster.NewLabelPropagationDetector()
	default:
		clusterer = cluster.NewComponentDetector()
	}

	s := &Screener{
		Backend:   backend.New(cfg.Screen),
		Source:    source,
		Clusterer: clusterer,
		Config:    cfg.Screen,
		Log:       log,
	}
	if llmClient != nil {
		s.Repairer = repair.NewRepairer(llmClient, cfg.Repair)
	}
	return s
}

func (s *Screener) ValidateBatch(ctx context.Context, statements []string) []bool {
	return s.Backend.ValidateBatch(statements)
}

// FindDuplicates rejects a nil batch and NaN or infinite thresholds; finite
// values outside [0, 1] are clamped.
func (s *Screener) FindDuplicates(ctx context.Context, statements []string, threshold float64) ([]model.DuplicateMatch, error) {
	if err := checkBatch(statements, threshold); err != nil {
		return nil, err
	}
	return s.Backend.FindDuplicates(ctx, statements, threshold)
}

func (s *Screener) Contradictions(statements []string) []model.Contradiction {
	return dedupe.FindContradictions(statements, s.Config.NegationPrefix)
}

// Screen produces the full report for one batch.
func (s *Screener) Screen(ctx context.Context, statements []string, threshold float64) (*model.ScreenReport, error) {
	if err := checkBatch(statements, threshold); err != nil {
		return nil, err
	}
	start := time.Now()
	report := &model.ScreenReport{
		RunID:     uuid.New().String(),
		Backend:   s.Backend.Name(),
		Threshold: dedupe.ClampThreshold(threshold),
		Total:     len(statements),
		StartedAt: start.UTC(),
	}

	report.Valid = s.ValidateBatch(ctx, statements)
	for i, ok := range report.Valid {
		if ok {
			report.ValidCount++
			continue
		}
		report.Invalid = append(report.Invalid, model.InvalidStatement{
			Index:     i,
			Statement: statements[i],
			Diagnosis: string(validate.Diagnose(statements[i])),
		})
	}

	matches, err := s.FindDuplicates(ctx, statements, threshold)
	if err != nil {
		return nil, err
	}
	report.Duplicates = matches
	report.Clusters = s.Clusterer.Detect(len(statements), matches)
	report.Contradictions = s.Contradictions(statements)
	report.Duration = time.Since(start)

	s.Log.Info("screened batch",
		zap.String("run_id", report.RunID),
		zap.String("backend", report.Backend),
		zap.Int("total", report.Total),
		zap.Int("valid", report.ValidCount),
		zap.Int("duplicates", len(report.Duplicates)),
		zap.Int("clusters", len(report.Clusters)),
		zap.Int("contradictions", len(report.Contradictions)),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// LoadStatements reads up to limit statements from the configured source.
func (s *Screener) LoadStatements(ctx context.Context, limit int) ([]string, error) {
	if s.Source == nil {
		return nil, ErrNoSource
	}
	statements, err := s.Source.Statements(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements from %s: %w", s.Source.Name(), err)
	}
	if statements == nil {
		statements = []string{}
	}
	s.Log.Debug("loaded statements", zap.String("source", s.Source.Name()), zap.Int("count", len(statements)))
	return statements, nil
}

func (s *Screener) ScreenSource(ctx context.Context, limit int, threshold float64) (*model.ScreenReport, error) {
	statements, err := s.LoadStatements(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.Screen(ctx, statements, threshold)
}

func (s *Screener) Repair(ctx context.Context, statements []string) ([]model.RepairSuggestion, error) {
	if s.Repairer == nil {
		return nil, ErrNoRepairer
	}
	if statements == nil {
		return nil, ErrMissingBatch
	}
	suggestions, err := s.Repairer.SuggestBatch(ctx, statements)
	if err != nil {
		return nil, err
	}
	repaired := 0
	for _, sg := range suggestions {
		if sg.Valid {
			repaired++
		}
	}
	s.Log.Info("repair suggestions", zap.Int("invalid", len(suggestions)), zap.Int("repaired", repaired))
	return suggestions, nil
}

// Golden compares the serial backend against the parallel one on the same
// batch. The parallel side never falls back to serial here.
func (s *Screener) Golden(ctx context.Context, statements []string, threshold float64) (*golden.Report, error) {
	if err := checkBatch(statements, threshold); err != nil {
		return nil, err
	}
	report, err := golden.Compare(ctx, backend.Serial{}, backend.Parallel{Workers: s.Config.Workers}, statements, s.Config.GoldenSample, threshold)
	if err != nil {
		return nil, err
	}
	if !report.Equal() {
		s.Log.Warn("backends disagree",
			zap.Int("validate_mismatches", report.Validate.Mismatches),
			zap.Int("pairs_a", report.Duplicates.PairsA),
			zap.Int("pairs_b", report.Duplicates.PairsB),
		)
	}
	return report, nil
}

func (s *Screener) Close(ctx context.Context) error {
	if s.Source == nil {
		return nil
	}
	return s.Source.Close(ctx)
}

func checkBatch(statements []string, threshold float64) error {
	if statements == nil {
		return ErrMissingBatch
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return ErrInvalidThreshold
	}
	return nil
}
