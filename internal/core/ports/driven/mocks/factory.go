package mocks

import (
	"sync"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// MockAIFactory is a mock implementation of AIServiceFactory for testing.
// It hands out MockEmbeddingService and MockAnswerGenerator instances and
// records the settings it was called with.
type MockAIFactory struct {
	mu sync.Mutex

	embeddingErr error
	generatorErr error

	EmbeddingCalls []domain.EmbeddingSettings
	GeneratorCalls []domain.GeneratorSettings

	LastEmbedding *MockEmbeddingService
	LastGenerator *MockAnswerGenerator
}

// NewMockAIFactory creates a new MockAIFactory
func NewMockAIFactory() *MockAIFactory {
	return &MockAIFactory{}
}

// SetEmbeddingError makes CreateEmbeddingService fail with err
func (m *MockAIFactory) SetEmbeddingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddingErr = err
}

// SetGeneratorError makes CreateAnswerGenerator fail with err
func (m *MockAIFactory) SetGeneratorError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generatorErr = err
}

func (m *MockAIFactory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmbeddingCalls = append(m.EmbeddingCalls, *settings)
	if m.embeddingErr != nil {
		return nil, m.embeddingErr
	}
	if !settings.IsConfigured() {
		return nil, nil
	}
	m.LastEmbedding = NewMockEmbeddingService()
	return m.LastEmbedding, nil
}

func (m *MockAIFactory) CreateAnswerGenerator(settings *domain.GeneratorSettings) (driven.AnswerGenerator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeneratorCalls = append(m.GeneratorCalls, *settings)
	if m.generatorErr != nil {
		return nil, m.generatorErr
	}
	if !settings.IsConfigured() {
		return nil, nil
	}
	m.LastGenerator = NewMockAnswerGenerator()
	return m.LastGenerator, nil
}
