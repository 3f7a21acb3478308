package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// FactSource supplies a batch of statements in a stable order.
// limit <= 0 means no limit.
type FactSource interface {
	Name() string
	Statements(ctx context.Context, limit int) ([]string, error)
	Close(ctx context.Context) error
}

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}
