package ai

import (
	"fmt"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings
func (f *Factory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGoogle:
		return NewGoogleEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.AIProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// CreateAnswerGenerator creates an answer generator from settings
func (f *Factory) CreateAnswerGenerator(settings *domain.GeneratorSettings) (driven.AnswerGenerator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGoogle:
		return NewGoogleGenerator(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.AIProviderOpenAI:
		return NewOpenAIGenerator(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
