package driven

import (
	"context"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// ScriptureProvider serves translated verse text for one chapter.
// Implementations proxy third-party scripture APIs.
type ScriptureProvider interface {
	// Verses returns the verse texts of a chapter, in verse order.
	Verses(ctx context.Context, book string, chapter int, version string) ([]string, error)

	// Supports reports whether the provider can serve this version ID.
	Supports(version string) bool
}

// OriginalTextProvider serves Greek and Hebrew source text.
type OriginalTextProvider interface {
	// GreekVerses returns the Greek text of a chapter
	// (Septuagint for OT books, Textus Receptus for NT).
	GreekVerses(ctx context.Context, book string, chapter int) ([]string, error)

	// HebrewVerses returns the Hebrew text of an OT chapter
	// (Westminster Leningrad Codex).
	HebrewVerses(ctx context.Context, book string, chapter int) ([]string, error)
}

// LexiconProvider looks up dictionary definitions for original-language words.
type LexiconProvider interface {
	// Define returns lexicon entries for a word, or domain.ErrNotFound
	// when the dictionary has no entry for it.
	Define(ctx context.Context, dict domain.Dictionary, word string) ([]domain.Definition, error)
}

// PassageCorpus performs lexical search over the static verse corpus.
type PassageCorpus interface {
	// SearchText finds passages whose text matches the query, exact or
	// partial depending on mode.
	SearchText(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error)
}

// VerseCache caches immutable chapter text between requests.
// Scripture never changes, so entries only expire to bound memory.
type VerseCache interface {
	// Get returns the cached verses for a chapter key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]string, error)

	// Set stores the verses for a chapter key.
	Set(ctx context.Context, key string, verses []string) error
}
