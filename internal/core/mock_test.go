package core

import (
	"context"
	"errors"
)

type MockSource struct {
	Facts     []string
	Err       error
	LastLimit int
	Closed    bool
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Statements(ctx context.Context, limit int) ([]string, error) {
	m.LastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Facts) {
		return m.Facts[:limit], nil
	}
	return m.Facts, nil
}

func (m *MockSource) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Calls         int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	if m.Response == "" {
		return "", errors.New("no response")
	}
	return m.Response, nil
}
