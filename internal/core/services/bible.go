package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
	"github.com/OrtizDiego/versewise/internal/core/ports/driving"
)

// Ensure bibleService implements BibleService
var _ driving.BibleService = (*bibleService)(nil)

// punctuation stripped from words before lexicon lookup
const wordPunctuation = ".,;·:?!()«»"

// bibleService implements the BibleService interface
type bibleService struct {
	providers []driven.ScriptureProvider
	originals driven.OriginalTextProvider
	lexicon   driven.LexiconProvider
	cache     driven.VerseCache // optional, may be nil
	logger    *slog.Logger
}

// NewBibleService creates a new BibleService. cache may be nil to disable
// chapter caching.
func NewBibleService(
	providers []driven.ScriptureProvider,
	originals driven.OriginalTextProvider,
	lexicon driven.LexiconProvider,
	cache driven.VerseCache,
	logger *slog.Logger,
) driving.BibleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bibleService{
		providers: providers,
		originals: originals,
		lexicon:   lexicon,
		cache:     cache,
		logger:    logger,
	}
}

// Books returns the canonical book names
func (s *bibleService) Books(_ context.Context) []string {
	return domain.Books
}

// Chapters returns the chapter numbers of a book
func (s *bibleService) Chapters(_ context.Context, book string) ([]int, error) {
	if !domain.IsCanonicalBook(book) {
		return nil, domain.ErrNotFound
	}
	return domain.GetChaptersForBook(book), nil
}

// Verses returns the verses of a chapter in the given translation
func (s *bibleService) Verses(ctx context.Context, book string, chapter int, version string) ([]string, error) {
	if err := validateChapter(book, chapter); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("verses:%s:%d:%s", book, chapter, version)
	if cached := s.cached(ctx, key); cached != nil {
		return cached, nil
	}

	for _, p := range s.providers {
		if !p.Supports(version) {
			continue
		}
		verses, err := p.Verses(ctx, book, chapter, version)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, verses)
		return verses, nil
	}

	return nil, fmt.Errorf("%w: unsupported version %q", domain.ErrInvalidInput, version)
}

// GreekVerses returns the Greek text of a chapter
func (s *bibleService) GreekVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	if err := validateChapter(book, chapter); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("greek:%s:%d", book, chapter)
	if cached := s.cached(ctx, key); cached != nil {
		return cached, nil
	}

	verses, err := s.originals.GreekVerses(ctx, book, chapter)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, verses)
	return verses, nil
}

// HebrewVerses returns the Hebrew text of an OT chapter
func (s *bibleService) HebrewVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	if err := validateChapter(book, chapter); err != nil {
		return nil, err
	}
	if !domain.IsOldTestament(book) {
		return nil, fmt.Errorf("%w: %s has no Hebrew text", domain.ErrInvalidInput, book)
	}

	key := fmt.Sprintf("hebrew:%s:%d", book, chapter)
	if cached := s.cached(ctx, key); cached != nil {
		return cached, nil
	}

	verses, err := s.originals.HebrewVerses(ctx, book, chapter)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, verses)
	return verses, nil
}

// Define looks up a word in the appropriate lexicon. Greek words go to LSJ
// directly; Hebrew surface forms walk the lemma candidate chain against BDB
// until the first hit.
func (s *bibleService) Define(ctx context.Context, word string) ([]domain.Definition, error) {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(wordPunctuation, r) {
			return -1
		}
		return r
	}, word)
	if clean == "" {
		return nil, domain.ErrInvalidInput
	}

	if !domain.ContainsHebrew(clean) {
		return s.lexicon.Define(ctx, domain.DictionaryLSJ, clean)
	}

	for _, candidate := range domain.HebrewCandidates(clean) {
		defs, err := s.lexicon.Define(ctx, domain.DictionaryBDB, candidate)
		if err == nil && len(defs) > 0 {
			return defs, nil
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, domain.ErrNotFound
}

func (s *bibleService) cached(ctx context.Context, key string) []string {
	if s.cache == nil {
		return nil
	}
	verses, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	return verses
}

func (s *bibleService) store(ctx context.Context, key string, verses []string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, verses); err != nil {
		s.logger.Warn("verse cache write failed", "key", key, "error", err)
	}
}

func validateChapter(book string, chapter int) error {
	count := domain.ChapterCount(book)
	if count == 0 {
		return domain.ErrNotFound
	}
	if chapter < 1 || chapter > count {
		return fmt.Errorf("%w: %s has %d chapters", domain.ErrInvalidInput, book, count)
	}
	return nil
}
