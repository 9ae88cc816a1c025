package driving

import (
	"context"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// UpdateAISettingsRequest carries partial AI settings updates.
// Nil fields are left unchanged; API keys are write-only.
type UpdateAISettingsRequest struct {
	EmbeddingProvider *domain.AIProvider `json:"embedding_provider,omitempty"`
	EmbeddingModel    *string            `json:"embedding_model,omitempty"`
	EmbeddingAPIKey   *string            `json:"embedding_api_key,omitempty"`
	EmbeddingBaseURL  *string            `json:"embedding_base_url,omitempty"`

	GeneratorProvider *domain.AIProvider `json:"generator_provider,omitempty"`
	GeneratorModel    *string            `json:"generator_model,omitempty"`
	GeneratorAPIKey   *string            `json:"generator_api_key,omitempty"`
	GeneratorBaseURL  *string            `json:"generator_base_url,omitempty"`

	MatchThreshold *float64 `json:"match_threshold,omitempty"`
	MatchCount     *int     `json:"match_count,omitempty"`
}

// AIStatus reports which AI capabilities are currently live
type AIStatus struct {
	EmbeddingConfigured bool   `json:"embedding_configured"`
	GeneratorConfigured bool   `json:"generator_configured"`
	EmbeddingModel      string `json:"embedding_model,omitempty"`
	GeneratorModel      string `json:"generator_model,omitempty"`
}

// SettingsService manages runtime AI configuration
type SettingsService interface {
	// GetAISettings retrieves the AI settings (API keys blanked)
	GetAISettings(ctx context.Context) (*domain.AISettings, error)

	// UpdateAISettings applies a partial update, rebuilds the affected AI
	// services, and swaps them into the runtime registry
	UpdateAISettings(ctx context.Context, updaterID string, req UpdateAISettingsRequest) (*domain.AISettings, error)

	// Status reports which AI services are currently available
	Status(ctx context.Context) (*AIStatus, error)
}
