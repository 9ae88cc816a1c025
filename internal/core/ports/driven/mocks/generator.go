package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// MockAnswerGenerator is a mock implementation of AnswerGenerator for testing
type MockAnswerGenerator struct {
	mu         sync.Mutex
	response   json.RawMessage
	err        error
	calls      int
	lastPrompt string
	lastShape  driven.OutputShape
}

// NewMockAnswerGenerator creates a new MockAnswerGenerator
func NewMockAnswerGenerator() *MockAnswerGenerator {
	return &MockAnswerGenerator{
		response: json.RawMessage(`{"answer": "mock answer", "sourceFiles": []}`),
	}
}

// SetResponse sets the raw payload returned by Generate
func (m *MockAnswerGenerator) SetResponse(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = json.RawMessage(raw)
}

// SetError makes every subsequent call fail with err
func (m *MockAnswerGenerator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many Generate invocations were made
func (m *MockAnswerGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent Generate call
func (m *MockAnswerGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}

// LastShape returns the output shape of the most recent Generate call
func (m *MockAnswerGenerator) LastShape() driven.OutputShape {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastShape
}

func (m *MockAnswerGenerator) Generate(ctx context.Context, prompt string, shape driven.OutputShape) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPrompt = prompt
	m.lastShape = shape
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockAnswerGenerator) Model() string { return "mock-generator-model" }

func (m *MockAnswerGenerator) Ping(ctx context.Context) error { return nil }

func (m *MockAnswerGenerator) Close() error { return nil }
