package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.SettingsStore using PostgreSQL.
// API keys are encrypted with the installation key before storage.
type SettingsStore struct {
	db        *DB
	encryptor *SecretEncryptor
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB, encryptor *SecretEncryptor) *SettingsStore {
	return &SettingsStore{db: db, encryptor: encryptor}
}

// GetAISettings retrieves the AI settings, domain.ErrNotFound when unset
func (s *SettingsStore) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	query := `
		SELECT embedding_provider, embedding_model, embedding_api_key, embedding_base_url,
			   generator_provider, generator_model, generator_api_key, generator_base_url,
			   match_threshold, match_count, updated_at, updated_by
		FROM ai_settings
		WHERE id = 1
	`

	var settings domain.AISettings
	var embProvider, embModel, embBaseURL sql.NullString
	var genProvider, genModel, genBaseURL sql.NullString
	var embKey, genKey []byte
	var updatedBy sql.NullString

	err := s.db.QueryRowContext(ctx, query).Scan(
		&embProvider,
		&embModel,
		&embKey,
		&embBaseURL,
		&genProvider,
		&genModel,
		&genKey,
		&genBaseURL,
		&settings.MatchThreshold,
		&settings.MatchCount,
		&settings.UpdatedAt,
		&updatedBy,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	settings.Embedding.Provider = domain.AIProvider(embProvider.String)
	settings.Embedding.Model = embModel.String
	settings.Embedding.BaseURL = embBaseURL.String
	settings.Generator.Provider = domain.AIProvider(genProvider.String)
	settings.Generator.Model = genModel.String
	settings.Generator.BaseURL = genBaseURL.String
	settings.UpdatedBy = updatedBy.String

	if len(embKey) > 0 {
		key, err := s.encryptor.DecryptString(embKey)
		if err != nil {
			return nil, fmt.Errorf("decrypt embedding api key: %w", err)
		}
		settings.Embedding.APIKey = key
	}
	if len(genKey) > 0 {
		key, err := s.encryptor.DecryptString(genKey)
		if err != nil {
			return nil, fmt.Errorf("decrypt generator api key: %w", err)
		}
		settings.Generator.APIKey = key
	}

	return &settings, nil
}

// SaveAISettings persists the AI settings
func (s *SettingsStore) SaveAISettings(ctx context.Context, settings *domain.AISettings) error {
	query := `
		INSERT INTO ai_settings (id, embedding_provider, embedding_model, embedding_api_key, embedding_base_url,
								 generator_provider, generator_model, generator_api_key, generator_base_url,
								 match_threshold, match_count, updated_at, updated_by)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			embedding_provider = EXCLUDED.embedding_provider,
			embedding_model = EXCLUDED.embedding_model,
			embedding_api_key = EXCLUDED.embedding_api_key,
			embedding_base_url = EXCLUDED.embedding_base_url,
			generator_provider = EXCLUDED.generator_provider,
			generator_model = EXCLUDED.generator_model,
			generator_api_key = EXCLUDED.generator_api_key,
			generator_base_url = EXCLUDED.generator_base_url,
			match_threshold = EXCLUDED.match_threshold,
			match_count = EXCLUDED.match_count,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`

	var embKey, genKey []byte
	var err error
	if settings.Embedding.APIKey != "" {
		embKey, err = s.encryptor.EncryptString(settings.Embedding.APIKey)
		if err != nil {
			return fmt.Errorf("encrypt embedding api key: %w", err)
		}
	}
	if settings.Generator.APIKey != "" {
		genKey, err = s.encryptor.EncryptString(settings.Generator.APIKey)
		if err != nil {
			return fmt.Errorf("encrypt generator api key: %w", err)
		}
	}

	if settings.UpdatedAt.IsZero() {
		settings.UpdatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, query,
		string(settings.Embedding.Provider),
		settings.Embedding.Model,
		embKey,
		settings.Embedding.BaseURL,
		string(settings.Generator.Provider),
		settings.Generator.Model,
		genKey,
		settings.Generator.BaseURL,
		settings.MatchThreshold,
		settings.MatchCount,
		settings.UpdatedAt,
		settings.UpdatedBy,
	)
	return err
}
