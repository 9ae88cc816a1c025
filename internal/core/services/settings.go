package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
	"github.com/OrtizDiego/versewise/internal/core/ports/driving"
	"github.com/OrtizDiego/versewise/internal/runtime"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	store    driven.SettingsStore
	factory  driven.AIServiceFactory
	services *runtime.Services
	logger   *slog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	store driven.SettingsStore,
	factory driven.AIServiceFactory,
	services *runtime.Services,
	logger *slog.Logger,
) driving.SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{
		store:    store,
		factory:  factory,
		services: services,
		logger:   logger,
	}
}

// GetAISettings retrieves the AI settings with API keys blanked
func (s *settingsService) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	redacted := *settings
	redacted.Embedding.APIKey = ""
	redacted.Generator.APIKey = ""
	return &redacted, nil
}

// UpdateAISettings applies a partial update, persists it, and rebuilds the
// affected AI services. The new services are health-checked before being
// swapped into the runtime registry, so a bad key never replaces a working
// client.
func (s *settingsService) UpdateAISettings(ctx context.Context, updaterID string, req driving.UpdateAISettingsRequest) (*domain.AISettings, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	embeddingChanged := applyEmbeddingUpdate(&settings.Embedding, req)
	generatorChanged := applyGeneratorUpdate(&settings.Generator, req)

	if req.MatchThreshold != nil {
		if *req.MatchThreshold <= 0 || *req.MatchThreshold > 1 {
			return nil, fmt.Errorf("%w: match threshold must be in (0, 1]", domain.ErrInvalidInput)
		}
		settings.MatchThreshold = *req.MatchThreshold
	}
	if req.MatchCount != nil {
		if *req.MatchCount < 1 {
			return nil, fmt.Errorf("%w: match count must be positive", domain.ErrInvalidInput)
		}
		settings.MatchCount = *req.MatchCount
	}

	settings.UpdatedAt = time.Now()
	settings.UpdatedBy = updaterID

	if embeddingChanged {
		if err := s.rebuildEmbedding(ctx, settings); err != nil {
			return nil, err
		}
	}
	if generatorChanged {
		if err := s.rebuildGenerator(ctx, settings); err != nil {
			return nil, err
		}
	}
	s.services.SetRetrieval(settings.MatchThreshold, settings.MatchCount)

	if err := s.store.SaveAISettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("save ai settings: %w", err)
	}

	s.logger.Info("ai settings updated",
		"updated_by", updaterID,
		"embedding_changed", embeddingChanged,
		"generator_changed", generatorChanged)

	redacted := *settings
	redacted.Embedding.APIKey = ""
	redacted.Generator.APIKey = ""
	return &redacted, nil
}

// Status reports which AI services are currently available
func (s *settingsService) Status(_ context.Context) (*driving.AIStatus, error) {
	status := &driving.AIStatus{}
	if svc := s.services.EmbeddingService(); svc != nil {
		status.EmbeddingConfigured = true
		status.EmbeddingModel = svc.Model()
	}
	if gen := s.services.Generator(); gen != nil {
		status.GeneratorConfigured = true
		status.GeneratorModel = gen.Model()
	}
	return status, nil
}

// load returns the stored settings, falling back to defaults when none have
// been saved yet.
func (s *settingsService) load(ctx context.Context) (*domain.AISettings, error) {
	settings, err := s.store.GetAISettings(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultAISettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ai settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) rebuildEmbedding(ctx context.Context, settings *domain.AISettings) error {
	svc, err := s.factory.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("create embedding service: %w", err)
	}
	if err := s.services.ValidateAndSetEmbedding(ctx, svc); err != nil {
		return fmt.Errorf("validate embedding service: %w", err)
	}
	return nil
}

func (s *settingsService) rebuildGenerator(ctx context.Context, settings *domain.AISettings) error {
	gen, err := s.factory.CreateAnswerGenerator(&settings.Generator)
	if err != nil {
		return fmt.Errorf("create answer generator: %w", err)
	}
	if err := s.services.ValidateAndSetGenerator(ctx, gen); err != nil {
		return fmt.Errorf("validate answer generator: %w", err)
	}
	return nil
}

func applyEmbeddingUpdate(e *domain.EmbeddingSettings, req driving.UpdateAISettingsRequest) bool {
	changed := false
	if req.EmbeddingProvider != nil {
		e.Provider = *req.EmbeddingProvider
		changed = true
	}
	if req.EmbeddingModel != nil {
		e.Model = *req.EmbeddingModel
		changed = true
	}
	if req.EmbeddingAPIKey != nil {
		e.APIKey = *req.EmbeddingAPIKey
		changed = true
	}
	if req.EmbeddingBaseURL != nil {
		e.BaseURL = *req.EmbeddingBaseURL
		changed = true
	}
	return changed
}

func applyGeneratorUpdate(g *domain.GeneratorSettings, req driving.UpdateAISettingsRequest) bool {
	changed := false
	if req.GeneratorProvider != nil {
		g.Provider = *req.GeneratorProvider
		changed = true
	}
	if req.GeneratorModel != nil {
		g.Model = *req.GeneratorModel
		changed = true
	}
	if req.GeneratorAPIKey != nil {
		g.APIKey = *req.GeneratorAPIKey
		changed = true
	}
	if req.GeneratorBaseURL != nil {
		g.BaseURL = *req.GeneratorBaseURL
		changed = true
	}
	return changed
}
