// Package golden checks that two backends agree on the same batch:
// validation over the full batch, duplicate pair sets over a sample.
package golden

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/agenthands/factscreen/internal/core/backend"
	"github.com/agenthands/factscreen/internal/core/model"
)

const (
	DefaultSample = 2000
	previewLimit  = 50
)

type ValidateDiff struct {
	Total             int   `json:"total"`
	Mismatches        int   `json:"mismatches"`
	MismatchesPreview []int `json:"mismatch_indices_preview"`
}

type DuplicateDiff struct {
	Sample       int      `json:"sample"`
	Threshold    float64  `json:"threshold"`
	PairsA       int      `json:"pairs_a"`
	PairsB       int      `json:"pairs_b"`
	OnlyAPreview [][2]int `json:"only_a_preview"`
	OnlyBPreview [][2]int `json:"only_b_preview"`
}

type Report struct {
	BackendA    string        `json:"backend_a"`
	BackendB    string        `json:"backend_b"`
	GeneratedAt time.Time     `json:"generated_at"`
	Validate    ValidateDiff  `json:"validate"`
	Duplicates  DuplicateDiff `json:"duplicates"`
}

// Compare runs both backends. sample <= 0 uses DefaultSample.
func Compare(ctx context.Context, a, b backend.Backend, statements []string, sample int, threshold float64) (*Report, error) {
	if sample <= 0 {
		sample = DefaultSample
	}
	if sample > len(statements) {
		sample = len(statements)
	}

	report := &Report{
		BackendA:    a.Name(),
		BackendB:    b.Name(),
		GeneratedAt: time.Now().UTC(),
	}

	va := a.ValidateBatch(statements)
	vb := b.ValidateBatch(statements)
	report.Validate = compareValidate(va, vb)

	head := statements[:sample]
	da, err := a.FindDuplicates(ctx, head, threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: find duplicates: %w", a.Name(), err)
	}
	db, err := b.FindDuplicates(ctx, head, threshold)
	if err != nil {
		return nil, fmt.Errorf("%s: find duplicates: %w", b.Name(), err)
	}

	pa, pb := pairSet(da), pairSet(db)
	report.Duplicates = DuplicateDiff{
		Sample:       sample,
		Threshold:    threshold,
		PairsA:       len(pa),
		PairsB:       len(pb),
		OnlyAPreview: difference(pa, pb),
		OnlyBPreview: difference(pb, pa),
	}
	return report, nil
}

// Equal reports whether the two backends produced identical results.
func (r *Report) Equal() bool {
	return r.Validate.Mismatches == 0 &&
		r.Duplicates.PairsA == r.Duplicates.PairsB &&
		len(r.Duplicates.OnlyAPreview) == 0 &&
		len(r.Duplicates.OnlyBPreview) == 0
}

func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Golden Comparison: %s vs %s\n\n", r.BackendA, r.BackendB)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))

	status := "MATCH"
	if !r.Equal() {
		status = "MISMATCH"
	}
	fmt.Fprintf(&b, "Result: **%s**\n\n", status)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Check | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Statements | %d |\n", r.Validate.Total)
	fmt.Fprintf(&b, "| Validation mismatches | %d |\n", r.Validate.Mismatches)
	fmt.Fprintf(&b, "| Duplicate sample | %d |\n", r.Duplicates.Sample)
	fmt.Fprintf(&b, "| Threshold | %g |\n", r.Duplicates.Threshold)
	fmt.Fprintf(&b, "| Pairs (%s) | %d |\n", r.BackendA, r.Duplicates.PairsA)
	fmt.Fprintf(&b, "| Pairs (%s) | %d |\n", r.BackendB, r.Duplicates.PairsB)
	b.WriteString("\n")

	b.WriteString("## Result\n\n```json\n")
	data, _ := json.MarshalIndent(r, "", "  ")
	b.Write(data)
	b.WriteString("\n```\n\n")

	b.WriteString("## Interpretation\n\n")
	b.WriteString("- Validation must have 0 mismatches.\n")
	b.WriteString("- Duplicate pair sets must be identical; any pair listed above is a regression in one backend.\n")
	return b.String()
}

// HTML renders Markdown as a standalone page.
func (r *Report) HTML() (string, error) {
	var content bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(r.Markdown()), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>Golden Comparison</title></head><body>" +
		content.String() + "</body></html>", nil
}

func compareValidate(a, b []bool) ValidateDiff {
	diff := ValidateDiff{Total: len(a), MismatchesPreview: []int{}}
	n := len(a)
	if len(b) > n {
		n = len(b)
		diff.Total = len(b)
	}
	for i := 0; i < n; i++ {
		if i < len(a) && i < len(b) && a[i] == b[i] {
			continue
		}
		diff.Mismatches++
		if len(diff.MismatchesPreview) < previewLimit {
			diff.MismatchesPreview = append(diff.MismatchesPreview, i)
		}
	}
	return diff
}

func pairSet(matches []model.DuplicateMatch) map[[2]int]struct{} {
	set := make(map[[2]int]struct{}, len(matches))
	for _, m := range matches {
		i, j := m.I, m.J
		if i > j {
			i, j = j, i
		}
		set[[2]int{i, j}] = struct{}{}
	}
	return set
}

// difference returns up to previewLimit pairs of a missing from b, sorted.
func difference(a, b map[[2]int]struct{}) [][2]int {
	out := [][2]int{}
	for p := range a {
		if _, ok := b[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(x, y int) bool {
		if out[x][0] != out[y][0] {
			return out[x][0] < out[y][0]
		}
		return out[x][1] < out[y][1]
	})
	if len(out) > previewLimit {
		out = out[:previewLimit]
	}
	return out
}
