package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create memgraph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to reach memgraph at %s: %w", uri, err)
	}

	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// MemgraphSource reads statements stored in the knowledge graph, either the
// fact text of RELATES_TO edges or the statement property of Fact nodes.
type MemgraphSource struct {
	Driver    GraphDriver
	GroupID   string
	FromNodes bool
}

func NewMemgraphSource(d GraphDriver, groupID string, fromNodes bool) *MemgraphSource {
	return &MemgraphSource{Driver: d, GroupID: groupID, FromNodes: fromNodes}
}

func (s *MemgraphSource) Name() string {
	if s.FromNodes {
		return "memgraph:nodes"
	}
	return "memgraph:edges"
}

func (s *MemgraphSource) Statements(ctx context.Context, limit int) ([]string, error) {
	query := GetGroupFactEdgesQuery
	if s.FromNodes {
		query = GetFactNodesQuery
	}
	params := map[string]interface{}{
		"group_id": s.GroupID,
	}
	if limit > 0 {
		query += limitClause
		params["limit"] = limit
	}

	result, err := s.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements from %s: %w", s.Name(), err)
	}

	statements := make([]string, 0, len(result.Records))
	for _, record := range result.Records {
		v, ok := record.Get("statement")
		if !ok {
			continue
		}
		if st, ok := v.(string); ok {
			statements = append(statements, st)
		}
	}
	return statements, nil
}

func (s *MemgraphSource) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}
