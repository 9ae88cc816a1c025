package domain

import "time"

// AIProvider identifies the AI/embedding provider
type AIProvider string

const (
	AIProviderGoogle AIProvider = "google"
	AIProviderOpenAI AIProvider = "openai"
)

// Retrieval defaults: documents below the similarity threshold are never
// surfaced, and at most MatchCount rows are considered per question.
const (
	DefaultMatchThreshold = 0.7
	DefaultMatchCount     = 10
)

// AISettings holds AI service configuration (embedding and generation).
// This can be updated at runtime via the admin API.
type AISettings struct {
	Embedding EmbeddingSettings `json:"embedding"`
	Generator GeneratorSettings `json:"generator"`

	// Retrieval configuration for the question-answering flows
	MatchThreshold float64 `json:"match_threshold"`
	MatchCount     int     `json:"match_count"`

	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"` // User ID
}

// DefaultAISettings returns the configuration a fresh installation starts
// with: Google models, retrieval at 0.7/10.
func DefaultAISettings() *AISettings {
	return &AISettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderGoogle,
			Model:    "text-embedding-004",
		},
		Generator: GeneratorSettings{
			Provider: AIProviderGoogle,
			Model:    "gemini-2.0-flash",
		},
		MatchThreshold: DefaultMatchThreshold,
		MatchCount:     DefaultMatchCount,
		UpdatedAt:      time.Now(),
	}
}

// EmbeddingSettings configures the embedding service
type EmbeddingSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize to JSON
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if embedding settings are properly configured
func (e *EmbeddingSettings) IsConfigured() bool {
	return e.Provider != "" && e.APIKey != ""
}

// GeneratorSettings configures the answer generation service
type GeneratorSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize to JSON
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if generator settings are properly configured
func (g *GeneratorSettings) IsConfigured() bool {
	return g.Provider != "" && g.APIKey != ""
}
