package driving

import (
	"context"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// AssistantService answers questions grounded in the interpretation library
type AssistantService interface {
	// AskQuestion answers a free-form theological question from the library.
	// When retrieval finds nothing, the generator is never invoked and a
	// fixed informational answer with no sources comes back.
	AskQuestion(ctx context.Context, question string) (*domain.StructuredAnswer, error)

	// InterpretVerse explains a verse reference in light of a follow-up
	// question, grounded the same way as AskQuestion.
	InterpretVerse(ctx context.Context, verseReference, userQuestion string) (*domain.StructuredAnswer, error)

	// SearchPassages finds Bible passages for a query. Exact and partial
	// modes search the static corpus lexically and never touch the AI
	// pipeline; any other mode asks the model directly.
	SearchPassages(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error)
}
