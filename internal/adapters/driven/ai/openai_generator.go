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

// Ensure OpenAIGenerator implements AnswerGenerator
var _ driven.AnswerGenerator = (*OpenAIGenerator)(nil)

// OpenAIGenerator implements AnswerGenerator using OpenAI's chat
// completions API with JSON response format
type OpenAIGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIGenerator creates a new OpenAI answer generator
func NewOpenAIGenerator(apiKey, model, baseURL string) (driven.AnswerGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai generator requires an api key", domain.ErrAPIKeyInvalid)
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}, nil
}

// chatRequest is the request body for the chat completions API
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

// chatResponse is the response from the chat completions API
type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *openAIError `json:"error,omitempty"`
}

// Generate runs one model invocation with the given prompt. JSON mode
// forces a top-level object, so when the flow expects an array the shape
// hint in the prompt tells the model to wrap nothing; the raw payload is
// still handed to the domain parse step undecoded.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, shape driven.OutputShape) (json.RawMessage, error) {
	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	}
	// OpenAI's json_object mode rejects array top levels outright, so the
	// format hint is only sent for object-shaped output.
	if shape == driven.OutputObject {
		reqBody.ResponseFormat = &chatFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if err := classifyOpenAIStatus(resp.StatusCode, chatResp.Error); err != nil {
		return nil, err
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", domain.ErrAIUnavailable)
	}

	return json.RawMessage(chatResp.Choices[0].Message.Content), nil
}

// Model returns the model name being used
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Ping verifies the generation service is available
func (g *OpenAIGenerator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/models/"+g.model, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var probe struct {
		Error *openAIError `json:"error,omitempty"`
	}
	_ = json.Unmarshal(respBody, &probe)
	return classifyOpenAIStatus(resp.StatusCode, probe.Error)
}

// Close releases resources held by the generator
func (g *OpenAIGenerator) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
