package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

// MockPassageCorpus is a mock implementation of PassageCorpus for testing
type MockPassageCorpus struct {
	mu       sync.Mutex
	passages []domain.Passage
	err      error
	calls    int
}

// NewMockPassageCorpus creates a new MockPassageCorpus
func NewMockPassageCorpus() *MockPassageCorpus {
	return &MockPassageCorpus{}
}

// SeedPassages sets the corpus contents
func (m *MockPassageCorpus) SeedPassages(passages ...domain.Passage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passages = passages
}

// SetError makes every subsequent call fail with err
func (m *MockPassageCorpus) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many SearchText invocations were made
func (m *MockPassageCorpus) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockPassageCorpus) SearchText(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	var results []domain.Passage
	for _, p := range m.passages {
		switch mode {
		case domain.MatchExact:
			if strings.EqualFold(p.Text, query) {
				results = append(results, p)
			}
		case domain.MatchPartial:
			if strings.Contains(strings.ToLower(p.Text), strings.ToLower(query)) {
				results = append(results, p)
			}
		}
	}
	return results, nil
}

// MockLexiconProvider is a mock implementation of LexiconProvider for testing
type MockLexiconProvider struct {
	mu      sync.Mutex
	entries map[string][]domain.Definition // keyed by dictionary + "/" + word
	lookups []string
}

// NewMockLexiconProvider creates a new MockLexiconProvider
func NewMockLexiconProvider() *MockLexiconProvider {
	return &MockLexiconProvider{
		entries: make(map[string][]domain.Definition),
	}
}

// SeedDefinition registers lexicon entries for a word
func (m *MockLexiconProvider) SeedDefinition(dict domain.Dictionary, word string, defs ...domain.Definition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[string(dict)+"/"+word] = defs
}

// Lookups returns every dictionary/word pair queried, in order
func (m *MockLexiconProvider) Lookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lookups...)
}

func (m *MockLexiconProvider) Define(ctx context.Context, dict domain.Dictionary, word string) ([]domain.Definition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := string(dict) + "/" + word
	m.lookups = append(m.lookups, key)
	defs, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return defs, nil
}

// MockScriptureProvider is a mock implementation of ScriptureProvider for testing
type MockScriptureProvider struct {
	mu       sync.Mutex
	chapters map[string][]string // keyed by book/chapter/version
	versions map[string]bool
	calls    int
}

// NewMockScriptureProvider creates a new MockScriptureProvider
func NewMockScriptureProvider(versions ...string) *MockScriptureProvider {
	supported := make(map[string]bool, len(versions))
	for _, v := range versions {
		supported[v] = true
	}
	return &MockScriptureProvider{
		chapters: make(map[string][]string),
		versions: supported,
	}
}

// SeedChapter registers verse text for a chapter
func (m *MockScriptureProvider) SeedChapter(book string, chapter int, version string, verses []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chapters[chapterKey(book, chapter, version)] = verses
}

// Calls returns how many Verses invocations were made
func (m *MockScriptureProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockScriptureProvider) Verses(ctx context.Context, book string, chapter int, version string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	verses, ok := m.chapters[chapterKey(book, chapter, version)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return verses, nil
}

func (m *MockScriptureProvider) Supports(version string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[version]
}

func chapterKey(book string, chapter int, version string) string {
	return fmt.Sprintf("%s/%d/%s", book, chapter, version)
}

// MockOriginalTextProvider is a mock implementation of OriginalTextProvider
// for testing
type MockOriginalTextProvider struct {
	mu     sync.Mutex
	greek  map[string][]string // keyed by book/chapter
	hebrew map[string][]string
	err    error
}

// NewMockOriginalTextProvider creates a new MockOriginalTextProvider
func NewMockOriginalTextProvider() *MockOriginalTextProvider {
	return &MockOriginalTextProvider{
		greek:  make(map[string][]string),
		hebrew: make(map[string][]string),
	}
}

// SeedGreek registers Greek verse text for a chapter
func (m *MockOriginalTextProvider) SeedGreek(book string, chapter int, verses []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.greek[fmt.Sprintf("%s/%d", book, chapter)] = verses
}

// SeedHebrew registers Hebrew verse text for a chapter
func (m *MockOriginalTextProvider) SeedHebrew(book string, chapter int, verses []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hebrew[fmt.Sprintf("%s/%d", book, chapter)] = verses
}

// SetError makes every subsequent call fail with err
func (m *MockOriginalTextProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockOriginalTextProvider) GreekVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	verses, ok := m.greek[fmt.Sprintf("%s/%d", book, chapter)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return verses, nil
}

func (m *MockOriginalTextProvider) HebrewVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	verses, ok := m.hebrew[fmt.Sprintf("%s/%d", book, chapter)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return verses, nil
}

// MockVerseCache is an in-memory VerseCache for testing
type MockVerseCache struct {
	mu      sync.Mutex
	entries map[string][]string
	hits    int
	misses  int
}

// NewMockVerseCache creates a new MockVerseCache
func NewMockVerseCache() *MockVerseCache {
	return &MockVerseCache{entries: make(map[string][]string)}
}

func (m *MockVerseCache) Get(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	verses, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, domain.ErrNotFound
	}
	m.hits++
	return verses, nil
}

func (m *MockVerseCache) Set(ctx context.Context, key string, verses []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = verses
	return nil
}

// Hits returns the cache hit count
func (m *MockVerseCache) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Misses returns the cache miss count
func (m *MockVerseCache) Misses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}
