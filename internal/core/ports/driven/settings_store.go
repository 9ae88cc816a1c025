package driven

import (
	"context"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// SettingsStore persists AI settings. API keys are encrypted at rest.
type SettingsStore interface {
	// GetAISettings retrieves the AI settings, domain.ErrNotFound when unset
	GetAISettings(ctx context.Context) (*domain.AISettings, error)

	// SaveAISettings persists the AI settings
	SaveAISettings(ctx context.Context, settings *domain.AISettings) error
}
