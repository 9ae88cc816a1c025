// Package bibleapi proxies bible-api.com for English translation text.
package bibleapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Ensure Client implements ScriptureProvider
var _ driven.ScriptureProvider = (*Client)(nil)

// supportedTranslations are the version IDs bible-api.com serves.
var supportedTranslations = map[string]bool{
	"kjv":   true,
	"web":   true,
	"asv":   true,
	"darby": true,
	"ylt":   true,
}

// Client is a thin HTTP client for bible-api.com.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a bible-api.com client. An empty baseURL selects
// the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://bible-api.com"
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Supports reports whether bible-api.com serves this version ID.
func (c *Client) Supports(version string) bool {
	return supportedTranslations[version]
}

// chapterResponse is the bible-api.com passage payload.
type chapterResponse struct {
	Error  string `json:"error"`
	Verses []struct {
		Verse int    `json:"verse"`
		Text  string `json:"text"`
	} `json:"verses"`
}

// Verses returns the verse texts of a chapter in the given translation.
func (c *Client) Verses(ctx context.Context, book string, chapter int, version string) ([]string, error) {
	if !c.Supports(version) {
		return nil, fmt.Errorf("%w: version %q not supported", domain.ErrInvalidInput, version)
	}

	// bible-api.com takes a human reference like "1 Samuel 3" with
	// spaces as plus signs
	ref := strings.ReplaceAll(book, " ", "+")
	endpoint := fmt.Sprintf("%s/%s+%d?translation=%s", c.baseURL, ref, chapter, version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bible-api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s %d (%s)", domain.ErrNotFound, book, chapter, version)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bible-api returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload chapterResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode bible-api response: %w", err)
	}

	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, payload.Error)
	}
	if len(payload.Verses) == 0 {
		return nil, fmt.Errorf("%w: %s %d has no verses", domain.ErrNotFound, book, chapter)
	}

	texts := make([]string, len(payload.Verses))
	for i, v := range payload.Verses {
		// verse text arrives with embedded newlines
		texts[i] = strings.TrimSpace(strings.Join(strings.Fields(v.Text), " "))
	}
	return texts, nil
}
