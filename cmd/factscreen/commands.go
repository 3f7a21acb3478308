package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/factscreen/internal/core"
	"github.com/agenthands/factscreen/internal/core/model"
	"github.com/agenthands/factscreen/internal/core/validate"
)

var rank bool
var outPath string

var validateCmd = &cobra.Command{
	Use:   "validate [statement...]",
	Short: "Check statements against Predicate(Argument1, Argument2).",
	RunE:  runValidate,
}

var dupesCmd = &cobra.Command{
	Use:   "dupes [statement...]",
	Short: "List near-duplicate pairs by token Jaccard similarity",
	Long: `Compares every pair of statements and prints i, j and the Jaccard score of
each pair at or above --threshold. Output is ordered by i then j unless
--rank is given, which sorts by score, highest first.`,
	RunE: runDupes,
}

var screenCmd = &cobra.Command{
	Use:   "screen [statement...]",
	Short: "Run validation, duplicate, cluster and contradiction checks as one report",
	RunE:  runScreen,
}

var goldenCmd = &cobra.Command{
	Use:   "golden [statement...]",
	Short: "Compare the serial and parallel backends on the same batch",
	Long: `Runs validation and duplicate detection on both backends and reports every
difference. Writes a Markdown report, or HTML when --out ends in .html.
Exits non-zero when the backends disagree.`,
	RunE: runGolden,
}

var contradictionsCmd = &cobra.Command{
	Use:   "contradictions [statement...]",
	Short: "List P(a, b). / NichtP(a, b). pairs",
	RunE:  runContradictions,
}

var repairCmd = &cobra.Command{
	Use:   "repair [statement...]",
	Short: "Ask the configured LLM to rewrite invalid statements",
	RunE:  runRepair,
}

func init() {
	dupesCmd.Flags().BoolVar(&rank, "rank", false, "sort pairs by score, highest first")
	goldenCmd.Flags().StringVar(&outPath, "out", "", "write the report to a file instead of stdout")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, cfg, err := newScreener(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	st, err := statements(ctx, s, cfg, args)
	if err != nil {
		return err
	}
	results := s.ValidateBatch(ctx, st)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, map[string]interface{}{"results": results})
	}

	valid := 0
	for i, ok := range results {
		if ok {
			valid++
			fmt.Fprintf(out, "ok\t%s\n", st[i])
			continue
		}
		fmt.Fprintf(out, "invalid(%s)\t%s\n", validate.Diagnose(st[i]), st[i])
	}
	fmt.Fprintf(out, "%d/%d valid\n", valid, len(results))
	return nil
}

func runDupes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, cfg, err := newScreener(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	st, err := statements(ctx, s, cfg, args)
	if err != nil {
		return err
	}
	matches, err := s.FindDuplicates(ctx, st, cfg.Screen.Threshold)
	if err != nil {
		return err
	}
	if rank {
		matches = model.RankByScore(matches)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, map[string]interface{}{"matches": matches})
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%d\t%d\t%.4f\n", m.I, m.J, m.Score)
	}
	return nil
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, cfg, err := newScreener(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	st, err := statements(ctx, s, cfg, args)
	if err != nil {
		return err
	}
	report, err := s.Screen(ctx, st, cfg.Screen.Threshold)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func runGolden(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, cfg, err := newScreener(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	st, err := statements(ctx, s, cfg, args)
	if err != nil {
		return err
	}
	report, err := s.Golden(ctx, st, cfg.Screen.Threshold)
	if err != nil {
		return err
	}

	var body string
	switch {
	case jsonOutput:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		body = string(data) + "\n"
	case strings.HasSuffix(outPath, ".html"):
		body, err = report.HTML()
		if err != nil {
			return err
		}
	default:
		body = report.Markdown()
	}

	if outPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), body)
	} else if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", outPath)
	}

	if !report.Equal() {
		return fmt.Errorf("backends disagree: %d validation mismatches, %d vs %d duplicate pairs",
			report.Validate.Mismatches, report.Duplicates.PairsA, report.Duplicates.PairsB)
	}
	return nil
}

func runContradictions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, cfg, err := newScreener(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	st, err := statements(ctx, s, cfg, args)
	if err != nil {
		return err
	}
	conflicts := s.Contradictions(st)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, map[string]interface{}{"contradictions": conflicts})
	}
	for _, c := range conflicts {
		fmt.Fprintf(out, "%s\t%s\n", st[c.Positive], st[c.Negative])
	}
	return nil
}

func runRepair(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, cfg, err := newScreener(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	st, err := statements(ctx, s, cfg, args)
	if err != nil {
		return err
	}
	suggestions, err := s.Repair(ctx, st)
	if errors.Is(err, core.ErrNoRepairer) {
		return fmt.Errorf("%w: set llm.provider in the config or LLM_PROVIDER", err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, map[string]interface{}{"suggestions": suggestions})
	}
	for _, sg := range suggestions {
		switch {
		case sg.Error != "":
			fmt.Fprintf(out, "%d\terror: %s\t%s\n", sg.Index, sg.Error, sg.Original)
		case sg.Valid:
			fmt.Fprintf(out, "%d\t%s\t=> %s\n", sg.Index, sg.Original, sg.Statement)
		default:
			fmt.Fprintf(out, "%d\t%s\t=> (still invalid) %s\n", sg.Index, sg.Original, sg.Statement)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
