package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

const maxLineBytes = 4 << 20

// JSONLSource reads a JSON-lines KB export, one object per line, taking the
// string at Field (default "statement").
type JSONLSource struct {
	Path  string
	Field string

	// Skipped counts malformed lines and lines without the field from the
	// last Statements call.
	Skipped int
}

func NewJSONLSource(path string) *JSONLSource {
	return &JSONLSource{Path: path, Field: "statement"}
}

func (s *JSONLSource) Name() string {
	return "jsonl:" + s.Path
}

func (s *JSONLSource) Statements(ctx context.Context, limit int) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	statements, skipped, err := ReadJSONL(ctx, f, s.Field, limit)
	s.Skipped = skipped
	return statements, err
}

func (s *JSONLSource) Close(ctx context.Context) error {
	return nil
}

// ReadJSONL extracts field from every JSON line of r. Blank lines are ignored;
// invalid lines and lines whose field is missing or not a string are
// counted as skipped.
func ReadJSONL(ctx context.Context, r io.Reader, field string, limit int) ([]string, int, error) {
	if field == "" {
		field = "statement"
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	statements := make([]string, 0)
	skipped := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !gjson.Valid(line) {
			skipped++
			continue
		}
		v := gjson.Get(line, field)
		if v.Type != gjson.String {
			skipped++
			continue
		}
		statements = append(statements, v.Str)
		if limit > 0 && len(statements) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read jsonl: %w", err)
	}
	return statements, skipped, nil
}

// ReadLines returns every non-blank line of r as one statement.
func ReadLines(r io.Reader, limit int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	statements := make([]string, 0)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		statements = append(statements, line)
		if limit > 0 && len(statements) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return statements, nil
}
