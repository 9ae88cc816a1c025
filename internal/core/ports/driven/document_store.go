package driven

import (
	"context"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// DocumentStore retrieves library documents by vector similarity.
// Ingestion (writing documents and their embeddings) happens outside this
// service; the core only reads.
type DocumentStore interface {
	// MatchDocuments returns the documents whose embeddings clear the
	// similarity threshold, best match first, capped at limit rows.
	// An empty result is a normal outcome, not an error; storage-layer
	// failures wrap domain.ErrStoreUnavailable.
	MatchDocuments(ctx context.Context, embedding []float32, threshold float64, limit int) ([]domain.RetrievedDocument, error)

	// HealthCheck verifies the store is reachable
	HealthCheck(ctx context.Context) error
}
