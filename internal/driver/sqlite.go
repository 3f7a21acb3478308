package driver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads statements from one column of a SQLite table in rowid
// order. NULL values are skipped.
type SQLiteSource struct {
	db     *sqlx.DB
	path   string
	table  string
	column string
}

func NewSQLiteSource(path, table, column string) (*SQLiteSource, error) {
	if !sqlIdentifier.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}
	if !sqlIdentifier.MatchString(column) {
		return nil, fmt.Errorf("invalid sqlite column name %q", column)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &SQLiteSource{db: db, path: path, table: table, column: column}, nil
}

func (s *SQLiteSource) Name() string {
	return "sqlite:" + s.path
}

func (s *SQLiteSource) Statements(ctx context.Context, limit int) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NOT NULL ORDER BY rowid`, s.column, s.table, s.column)
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	statements := make([]string, 0)
	if err := s.db.SelectContext(ctx, &statements, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load statements from %s: %w", s.Name(), err)
	}
	return statements, nil
}

func (s *SQLiteSource) Close(ctx context.Context) error {
	return s.db.Close()
}
