package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemgraphSource_Edges(t *testing.T) {
	mock := &MockDriver{MockResult: statementRecords("Likes(a, b).", nil, "Loves(x, y).")}
	src := NewMemgraphSource(mock, "group-1", false)

	statements, err := src.Statements(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Likes(a, b).", "Loves(x, y)."}, statements)
	assert.Equal(t, GetGroupFactEdgesQuery, mock.QueryExecuted)
	assert.Equal(t, "group-1", mock.QueryParams["group_id"])
	assert.NotContains(t, mock.QueryParams, "limit")
	assert.Equal(t, "memgraph:edges", src.Name())
}

func TestMemgraphSource_NodesWithLimit(t *testing.T) {
	mock := &MockDriver{MockResult: statementRecords("IsA(socrates, human).")}
	src := NewMemgraphSource(mock, "", true)

	statements, err := src.Statements(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"IsA(socrates, human)."}, statements)
	assert.Contains(t, mock.QueryExecuted, "MATCH (f:Fact)")
	assert.Contains(t, mock.QueryExecuted, "LIMIT $limit")
	assert.Equal(t, 10, mock.QueryParams["limit"])

	require.NoError(t, src.Close(context.Background()))
	assert.True(t, mock.Closed)
}

func TestMemgraphSource_Error(t *testing.T) {
	mock := &MockDriver{Err: errors.New("connection refused")}

	_, err := NewMemgraphSource(mock, "g", false).Statements(context.Background(), 0)

	assert.ErrorContains(t, err, "connection refused")
}
