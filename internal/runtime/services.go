package runtime

import (
	"context"
	"sync"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Services holds references to dynamically configurable AI services.
// Embedding and generation clients can be swapped at runtime when an admin
// updates the AI settings. Thread-safe for concurrent access; constructed
// once at process start and passed in explicitly (no package-level state).
type Services struct {
	mu sync.RWMutex

	// Dynamic services (can be nil until configured)
	embeddingService driven.EmbeddingService
	generator        driven.AnswerGenerator

	// Retrieval parameters for the RAG flows
	matchThreshold float64
	matchCount     int
}

// NewServices creates a new Services registry with default retrieval
// parameters.
func NewServices() *Services {
	return &Services{
		matchThreshold: domain.DefaultMatchThreshold,
		matchCount:     domain.DefaultMatchCount,
	}
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// Generator returns the current answer generator (may be nil)
func (s *Services) Generator() driven.AnswerGenerator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generator
}

// Retrieval returns the current match threshold and count
func (s *Services) Retrieval() (float64, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchThreshold, s.matchCount
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetGenerator updates the answer generator.
// Closes the old generator if present.
func (s *Services) SetGenerator(gen driven.AnswerGenerator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generator != nil {
		_ = s.generator.Close()
	}
	s.generator = gen
}

// SetRetrieval updates the retrieval parameters. Values outside their
// valid range are ignored.
func (s *Services) SetRetrieval(threshold float64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if threshold > 0 && threshold <= 1 {
		s.matchThreshold = threshold
	}
	if count > 0 {
		s.matchCount = count
	}
}

// ValidateAndSetEmbedding validates connectivity before swapping in the
// embedding service
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetGenerator validates connectivity before swapping in the
// generator
func (s *Services) ValidateAndSetGenerator(ctx context.Context, gen driven.AnswerGenerator) error {
	if gen == nil {
		s.SetGenerator(nil)
		return nil
	}

	if err := gen.Ping(ctx); err != nil {
		_ = gen.Close()
		return err
	}

	s.SetGenerator(gen)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.generator != nil {
		_ = s.generator.Close()
		s.generator = nil
	}
	return nil
}
