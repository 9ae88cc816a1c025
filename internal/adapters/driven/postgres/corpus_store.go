package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PassageCorpus = (*CorpusStore)(nil)

// Lexical searches cap results so a one-word query cannot dump the corpus
const corpusSearchLimit = 50

// CorpusStore implements driven.PassageCorpus over the static verses table
type CorpusStore struct {
	db *DB
}

// NewCorpusStore creates a new CorpusStore
func NewCorpusStore(db *DB) *CorpusStore {
	return &CorpusStore{db: db}
}

// SearchText finds passages whose text matches the query. Exact mode
// requires whole-verse equality (case-insensitive); partial mode matches
// substrings anywhere in the verse.
func (s *CorpusStore) SearchText(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error) {
	var where string
	var arg string

	switch mode {
	case domain.MatchExact:
		where = `lower(text) = lower($1)`
		arg = query
	case domain.MatchPartial:
		where = `text ILIKE '%' || $1 || '%'`
		arg = escapeLike(query)
	default:
		return nil, fmt.Errorf("%w: match type %q is not lexical", domain.ErrInvalidInput, mode)
	}

	stmt := fmt.Sprintf(`
		SELECT book, chapter, verse, text
		FROM verses
		WHERE %s
		ORDER BY book_number, chapter, verse
		LIMIT %d
	`, where, corpusSearchLimit)

	rows, err := s.db.QueryContext(ctx, stmt, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var passages []domain.Passage
	for rows.Next() {
		var p domain.Passage
		var verse int
		if err := rows.Scan(&p.Book, &p.Chapter, &verse, &p.Text); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		p.Verses = []int{verse}
		passages = append(passages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return passages, nil
}

// escapeLike neutralizes LIKE metacharacters in user queries
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
