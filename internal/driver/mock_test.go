package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
	Closed        bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

func statementRecords(values ...interface{}) neo4j.EagerResult {
	var res neo4j.EagerResult
	res.Keys = []string{"statement"}
	for _, v := range values {
		res.Records = append(res.Records, &neo4j.Record{Keys: []string{"statement"}, Values: []interface{}{v}})
	}
	return res
}
