package driving

import (
	"context"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// BibleService serves scripture text, original-language text, and lexicon
// lookups backed by third-party providers.
type BibleService interface {
	// Books returns the canonical book names
	Books(ctx context.Context) []string

	// Chapters returns the chapter numbers of a book
	Chapters(ctx context.Context, book string) ([]int, error)

	// Verses returns the verses of a chapter in the given translation
	Verses(ctx context.Context, book string, chapter int, version string) ([]string, error)

	// GreekVerses returns the Greek text of a chapter
	GreekVerses(ctx context.Context, book string, chapter int) ([]string, error)

	// HebrewVerses returns the Hebrew text of an OT chapter
	HebrewVerses(ctx context.Context, book string, chapter int) ([]string, error)

	// Define looks up a Greek or Hebrew word in the appropriate lexicon,
	// walking Hebrew lemma candidates until the first hit.
	Define(ctx context.Context, word string) ([]domain.Definition, error)
}
