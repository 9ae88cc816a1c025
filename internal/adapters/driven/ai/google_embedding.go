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

// Ensure GoogleEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*GoogleEmbedding)(nil)

// GoogleEmbedding implements EmbeddingService using the Gemini embedContent API
type GoogleEmbedding struct {
	apiKey     string
	model      string
	baseURL    string
	dimensions int
	client     *http.Client
}

// Model dimensions for Google embedding models
var googleModelDimensions = map[string]int{
	"text-embedding-004": 768,
	"embedding-001":      768,
}

// NewGoogleEmbedding creates a new Google embedding service
func NewGoogleEmbedding(apiKey, model, baseURL string) (driven.EmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: google embedding requires an api key", domain.ErrAPIKeyInvalid)
	}

	if model == "" {
		model = "text-embedding-004"
	}

	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	dimensions, ok := googleModelDimensions[model]
	if !ok {
		dimensions = 768
	}

	return &GoogleEmbedding{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		dimensions: dimensions,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// googleContent is the content payload shared by Gemini request bodies
type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

// googleEmbedRequest is the request body for embedContent
type googleEmbedRequest struct {
	Model   string        `json:"model"`
	Content googleContent `json:"content"`
}

// googleBatchEmbedRequest is the request body for batchEmbedContents
type googleBatchEmbedRequest struct {
	Requests []googleEmbedRequest `json:"requests"`
}

type googleEmbedding struct {
	Values []float32 `json:"values"`
}

type googleEmbedResponse struct {
	Embedding  *googleEmbedding  `json:"embedding,omitempty"`
	Embeddings []googleEmbedding `json:"embeddings,omitempty"`
}

// Embed generates embeddings for multiple texts
func (e *GoogleEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := googleBatchEmbedRequest{
		Requests: make([]googleEmbedRequest, 0, len(texts)),
	}
	for _, text := range texts {
		reqBody.Requests = append(reqBody.Requests, googleEmbedRequest{
			Model:   "models/" + e.model,
			Content: googleContent{Parts: []googlePart{{Text: text}}},
		})
	}

	var embResp googleEmbedResponse
	if err := e.doRequest(ctx, "batchEmbedContents", reqBody, &embResp); err != nil {
		return nil, err
	}

	if len(embResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			domain.ErrAIUnavailable, len(texts), len(embResp.Embeddings))
	}

	embeddings := make([][]float32, len(texts))
	for i, emb := range embResp.Embeddings {
		embeddings[i] = emb.Values
	}
	return embeddings, nil
}

// EmbedQuery generates an embedding for a search query
func (e *GoogleEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	reqBody := googleEmbedRequest{
		Model:   "models/" + e.model,
		Content: googleContent{Parts: []googlePart{{Text: query}}},
	}

	var embResp googleEmbedResponse
	if err := e.doRequest(ctx, "embedContent", reqBody, &embResp); err != nil {
		return nil, err
	}

	if embResp.Embedding == nil || len(embResp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", domain.ErrAIUnavailable)
	}
	return embResp.Embedding.Values, nil
}

// Dimensions returns the embedding dimension size
func (e *GoogleEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the model name being used
func (e *GoogleEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding service is available
func (e *GoogleEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close releases resources held by the embedding service
func (e *GoogleEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

// doRequest posts a method call to the Gemini API and decodes the response
func (e *GoogleEmbedding) doRequest(ctx context.Context, method string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:%s", e.baseURL, e.model, method)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := classifyGoogleStatus(resp.StatusCode, respBody); err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// classifyGoogleStatus maps Gemini HTTP status codes onto domain errors
func classifyGoogleStatus(status int, body []byte) error {
	if status == http.StatusOK {
		return nil
	}

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)
	message := apiErr.Error.Message
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrAPIKeyInvalid, message)
	default:
		return fmt.Errorf("%w: %s", domain.ErrAIUnavailable, message)
	}
}
