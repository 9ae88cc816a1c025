package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing.
// Tests seed it with documents and their similarity scores; the query
// embedding itself is ignored.
type MockDocumentStore struct {
	mu    sync.Mutex
	docs  []domain.RetrievedDocument
	err   error
	calls int
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{}
}

// SeedDocuments sets the documents returned by MatchDocuments
func (m *MockDocumentStore) SeedDocuments(docs ...domain.RetrievedDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = docs
}

// SetError makes every subsequent call fail with err
func (m *MockDocumentStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many MatchDocuments invocations were made
func (m *MockDocumentStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockDocumentStore) MatchDocuments(ctx context.Context, embedding []float32, threshold float64, limit int) ([]domain.RetrievedDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	matched := make([]domain.RetrievedDocument, 0, len(m.docs))
	for _, doc := range m.docs {
		if doc.Similarity >= threshold {
			matched = append(matched, doc)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Similarity > matched[j].Similarity
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockDocumentStore) HealthCheck(ctx context.Context) error { return nil }
