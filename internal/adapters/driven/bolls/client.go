// Package bolls proxies the bolls.life REST API for original-language
// scripture text (Septuagint, Textus Receptus, Westminster Leningrad
// Codex) and dictionary definitions (LSJ, BDB).
package bolls

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Ensure Client implements the scripture and lexicon ports
var _ driven.OriginalTextProvider = (*Client)(nil)
var _ driven.LexiconProvider = (*Client)(nil)

const (
	// bolls.life corpus IDs
	corpusSeptuagint     = "LXX"
	corpusTextusReceptus = "TR"
	corpusLeningrad      = "WLC"
)

// Client is a thin HTTP client for bolls.life.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a bolls.life client. An empty baseURL selects
// the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://bolls.life"
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// bollsVerse is one element of the get-text response array.
type bollsVerse struct {
	PK    int    `json:"pk"`
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// GreekVerses returns the Greek text of a chapter, Septuagint for OT
// books and Textus Receptus for NT books.
func (c *Client) GreekVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	corpus := corpusTextusReceptus
	if domain.IsOldTestament(book) {
		corpus = corpusSeptuagint
	}
	return c.chapterText(ctx, corpus, book, chapter)
}

// HebrewVerses returns the Westminster Leningrad Codex text of an OT
// chapter.
func (c *Client) HebrewVerses(ctx context.Context, book string, chapter int) ([]string, error) {
	if !domain.IsOldTestament(book) {
		return nil, fmt.Errorf("%w: %s has no Hebrew text", domain.ErrInvalidInput, book)
	}
	return c.chapterText(ctx, corpusLeningrad, book, chapter)
}

func (c *Client) chapterText(ctx context.Context, corpus, book string, chapter int) ([]string, error) {
	bookID := domain.BookNumber(book)
	if bookID == 0 {
		return nil, fmt.Errorf("%w: unknown book %q", domain.ErrNotFound, book)
	}

	// bolls.life addresses books by canonical number (Genesis=1)
	endpoint := fmt.Sprintf("%s/get-text/%s/%d/%d/", c.baseURL, corpus, bookID, chapter)

	var verses []bollsVerse
	if err := c.getJSON(ctx, endpoint, &verses); err != nil {
		return nil, err
	}

	if len(verses) == 0 {
		return nil, fmt.Errorf("%w: %s %d has no %s text", domain.ErrNotFound, book, chapter, corpus)
	}

	texts := make([]string, len(verses))
	for i, v := range verses {
		texts[i] = v.Text
	}
	return texts, nil
}

// Define looks up a word in an original-language dictionary. The word
// must already be cleaned; candidate generation happens in the service
// layer.
func (c *Client) Define(ctx context.Context, dict domain.Dictionary, word string) ([]domain.Definition, error) {
	if word == "" {
		return nil, fmt.Errorf("%w: empty word", domain.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("%s/dictionary-definition/%s/%s/", c.baseURL, dict, url.PathEscape(word))

	var defs []domain.Definition
	if err := c.getJSON(ctx, endpoint, &defs); err != nil {
		return nil, err
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no %s entry for %q", domain.ErrNotFound, dict, word)
	}
	return defs, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("bolls request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: bolls returned 404", domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bolls returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode bolls response: %w", err)
	}
	return nil
}
