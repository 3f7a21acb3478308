//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/factscreen/internal/core"
	"github.com/agenthands/factscreen/internal/core/model"
	"github.com/agenthands/factscreen/internal/driver"
)

const seedFactEdge = `
	MERGE (s:Entity {name: $subject, group_id: $group_id})
	MERGE (o:Entity {name: $object, group_id: $group_id})
	CREATE (s)-[:RELATES_TO {uuid: $uuid, fact: $fact, group_id: $group_id, created_at: $created_at}]->(o)
`

func TestScreenMemgraphGroup(t *testing.T) {
	cfg := loadConfig(t)
	ctx := context.Background()

	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	require.NoError(t, err)
	defer d.Close(ctx)

	groupID := fmt.Sprintf("test-group-%s", uuid.New().String())
	facts := []struct{ subject, object, fact string }{
		{"Socrates", "Human", "IsA(Socrates, Human)."},
		{"Socrates", "Human", "IsA(Socrates, Human)."},
		{"Socrates", "Human", "NichtIsA(Socrates, Human)."},
		{"Alice", "Bob", "Alice loves Bob"},
	}
	base := time.Now().UTC()
	for i, f := range facts {
		_, err := neo4j.ExecuteQuery(ctx, d.Driver, seedFactEdge, map[string]interface{}{
			"subject":    f.subject,
			"object":     f.object,
			"group_id":   groupID,
			"uuid":       uuid.New().String(),
			"fact":       f.fact,
			"created_at": base.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano),
		}, neo4j.EagerResultTransformer)
		require.NoError(t, err)
	}
	defer func() {
		_, _ = neo4j.ExecuteQuery(ctx, d.Driver, `MATCH (n {group_id: $gid}) DETACH DELETE n`,
			map[string]interface{}{"gid": groupID}, neo4j.EagerResultTransformer)
	}()

	cfg.Memgraph.GroupID = groupID
	s := core.NewScreener(cfg, driver.NewMemgraphSource(d, groupID, false), nil, nil)

	report, err := s.ScreenSource(ctx, 0, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, []bool{true, true, true, false}, report.Valid)
	assert.Equal(t, []model.DuplicateMatch{{I: 0, J: 1, Score: 1}}, report.Duplicates)
	assert.Len(t, report.Contradictions, 2)

	limited, err := s.ScreenSource(ctx, 2, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 2, limited.Total)
}
