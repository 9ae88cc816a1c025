package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL with the
// pgvector extension. Retrieval goes through the match_documents function
// so the threshold and ordering semantics live in one place.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// MatchDocuments returns the documents whose embeddings clear the
// similarity threshold, best match first, capped at limit rows
func (s *DocumentStore) MatchDocuments(ctx context.Context, embedding []float32, threshold float64, limit int) ([]domain.RetrievedDocument, error) {
	query := `
		SELECT file_name, content, similarity
		FROM match_documents($1::vector, $2, $3)
	`

	rows, err := s.db.QueryContext(ctx, query, vectorLiteral(embedding), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var docs []domain.RetrievedDocument
	for rows.Next() {
		var doc domain.RetrievedDocument
		if err := rows.Scan(&doc.FileName, &doc.Content, &doc.Similarity); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return docs, nil
}

// HealthCheck verifies the store is reachable
func (s *DocumentStore) HealthCheck(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// vectorLiteral renders an embedding in pgvector's text format: [1,2,3].
// lib/pq has no native vector support, so the value goes over the wire as
// text and is cast server-side.
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
