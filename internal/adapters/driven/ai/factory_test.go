package ai

import (
	"errors"
	"testing"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

func TestFactory_CreateEmbeddingService(t *testing.T) {
	factory := NewFactory()

	t.Run("unconfigured returns nil", func(t *testing.T) {
		svc, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if svc != nil {
			t.Error("expected nil service for unconfigured settings")
		}
	})

	t.Run("nil settings returns nil", func(t *testing.T) {
		svc, err := factory.CreateEmbeddingService(nil)
		if err != nil || svc != nil {
			t.Errorf("expected nil, nil; got %v, %v", svc, err)
		}
	})

	t.Run("google", func(t *testing.T) {
		svc, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
			Provider: domain.AIProviderGoogle,
			Model:    "text-embedding-004",
			APIKey:   "key",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := svc.(*GoogleEmbedding); !ok {
			t.Errorf("expected *GoogleEmbedding, got %T", svc)
		}
	})

	t.Run("openai", func(t *testing.T) {
		svc, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := svc.(*OpenAIEmbedding); !ok {
			t.Errorf("expected *OpenAIEmbedding, got %T", svc)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := factory.CreateEmbeddingService(&domain.EmbeddingSettings{
			Provider: "mystery",
			APIKey:   "key",
		})
		if !errors.Is(err, domain.ErrInvalidProvider) {
			t.Errorf("expected ErrInvalidProvider, got %v", err)
		}
	})
}

func TestFactory_CreateAnswerGenerator(t *testing.T) {
	factory := NewFactory()

	t.Run("unconfigured returns nil", func(t *testing.T) {
		gen, err := factory.CreateAnswerGenerator(&domain.GeneratorSettings{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gen != nil {
			t.Error("expected nil generator for unconfigured settings")
		}
	})

	t.Run("google", func(t *testing.T) {
		gen, err := factory.CreateAnswerGenerator(&domain.GeneratorSettings{
			Provider: domain.AIProviderGoogle,
			Model:    "gemini-2.0-flash",
			APIKey:   "key",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := gen.(*GoogleGenerator); !ok {
			t.Errorf("expected *GoogleGenerator, got %T", gen)
		}
	})

	t.Run("openai", func(t *testing.T) {
		gen, err := factory.CreateAnswerGenerator(&domain.GeneratorSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o-mini",
			APIKey:   "sk-test",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := gen.(*OpenAIGenerator); !ok {
			t.Errorf("expected *OpenAIGenerator, got %T", gen)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := factory.CreateAnswerGenerator(&domain.GeneratorSettings{
			Provider: "mystery",
			APIKey:   "key",
		})
		if !errors.Is(err, domain.ErrInvalidProvider) {
			t.Errorf("expected ErrInvalidProvider, got %v", err)
		}
	})
}
