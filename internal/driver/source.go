package driver

import (
	"context"
	"fmt"
	"os"

	"github.com/agenthands/factscreen/internal/config"
)

// FileSource reads one statement per line from a plain text file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Statements(ctx context.Context, limit int) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReadLines(f, limit)
}

func (s *FileSource) Close(ctx context.Context) error {
	return nil
}

// connectMemgraph is replaced in tests.
var connectMemgraph = func(ctx context.Context, uri, user, password string) (GraphDriver, error) {
	return NewMemgraphDriver(ctx, uri, user, password)
}

// OpenSource builds the source named by cfg.Source.Kind. An empty kind
// returns a nil source and no error.
func OpenSource(ctx context.Context, cfg *config.Config) (FactSource, error) {
	switch cfg.Source.Kind {
	case "":
		return nil, nil
	case "memgraph":
		d, err := connectMemgraph(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, err
		}
		return NewMemgraphSource(d, cfg.Memgraph.GroupID, cfg.Memgraph.FromNodes), nil
	case "sqlite":
		return NewSQLiteSource(cfg.SQLite.Path, cfg.SQLite.Table, cfg.SQLite.Column)
	case "jsonl":
		return NewJSONLSource(cfg.Source.Path), nil
	case "file":
		return NewFileSource(cfg.Source.Path), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}
