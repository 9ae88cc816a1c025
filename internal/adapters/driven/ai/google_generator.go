package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
)

// Ensure GoogleGenerator implements AnswerGenerator
var _ driven.AnswerGenerator = (*GoogleGenerator)(nil)

// GoogleGenerator implements AnswerGenerator using the Gemini
// generateContent API in JSON mode
type GoogleGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGoogleGenerator creates a new Google answer generator
func NewGoogleGenerator(apiKey, model, baseURL string) (driven.AnswerGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: google generator requires an api key", domain.ErrAPIKeyInvalid)
	}

	if model == "" {
		model = "gemini-2.0-flash"
	}

	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	return &GoogleGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}, nil
}

// googleGenerateRequest is the request body for generateContent
type googleGenerateRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleGenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

// googleGenerateResponse is the response from generateContent
type googleGenerateResponse struct {
	Candidates []struct {
		Content      googleContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

// Generate runs one model invocation with the given prompt.
// The shape hint is already embedded in the prompt instructions; JSON mode
// only guarantees syntactically valid JSON, so the raw payload is returned
// for the domain parse step to judge.
func (g *GoogleGenerator) Generate(ctx context.Context, prompt string, _ driven.OutputShape) (json.RawMessage, error) {
	reqBody := googleGenerateRequest{
		Contents: []googleContent{
			{Parts: []googlePart{{Text: prompt}}},
		},
		GenerationConfig: googleGenerationConfig{
			ResponseMimeType: "application/json",
			Temperature:      0.2,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if err := classifyGoogleStatus(resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	var genResp googleGenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates returned", domain.ErrAIUnavailable)
	}

	return json.RawMessage(genResp.Candidates[0].Content.Parts[0].Text), nil
}

// Model returns the model name being used
func (g *GoogleGenerator) Model() string {
	return g.model
}

// Ping verifies the generation service is available
func (g *GoogleGenerator) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	return classifyGoogleStatus(resp.StatusCode, respBody)
}

// Close releases resources held by the generator
func (g *GoogleGenerator) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
