package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

func TestNewGoogleEmbedding_RequiresAPIKey(t *testing.T) {
	_, err := NewGoogleEmbedding("", "text-embedding-004", "")
	if !errors.Is(err, domain.ErrAPIKeyInvalid) {
		t.Errorf("expected ErrAPIKeyInvalid for empty API key, got %v", err)
	}
}

func TestNewGoogleEmbedding_Defaults(t *testing.T) {
	svc, err := NewGoogleEmbedding("key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	emb := svc.(*GoogleEmbedding)
	if emb.model != "text-embedding-004" {
		t.Errorf("expected default model text-embedding-004, got %s", emb.model)
	}
	if emb.baseURL != "https://generativelanguage.googleapis.com/v1beta" {
		t.Errorf("unexpected default base URL: %s", emb.baseURL)
	}
	if svc.Dimensions() != 768 {
		t.Errorf("expected 768 dimensions, got %d", svc.Dimensions())
	}
}

func TestGoogleEmbedding_EmbedQuery_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/models/text-embedding-004:embedContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "key" {
			t.Error("expected x-goog-api-key header")
		}

		var req googleEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "models/text-embedding-004" {
			t.Errorf("unexpected model in request: %s", req.Model)
		}

		resp := googleEmbedResponse{
			Embedding: &googleEmbedding{Values: []float32{0.1, 0.2, 0.3}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc, err := NewGoogleEmbedding("key", "text-embedding-004", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.EmbedQuery(context.Background(), "what is grace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 || result[0] != 0.1 {
		t.Error("unexpected embedding values")
	}
}

func TestGoogleEmbedding_Embed_Batch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/text-embedding-004:batchEmbedContents" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req googleBatchEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Requests) != 2 {
			t.Errorf("expected 2 batch entries, got %d", len(req.Requests))
		}

		resp := googleEmbedResponse{
			Embeddings: []googleEmbedding{
				{Values: []float32{0.1, 0.2}},
				{Values: []float32{0.3, 0.4}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc, err := NewGoogleEmbedding("key", "text-embedding-004", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Embed(context.Background(), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 || result[1][0] != 0.3 {
		t.Error("unexpected embedding values")
	}
}

func TestGoogleEmbedding_Embed_EmptyInput(t *testing.T) {
	svc, err := NewGoogleEmbedding("key", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Embed(context.Background(), []string{})
	if err != nil {
		t.Errorf("unexpected error for empty input: %v", err)
	}
	if result != nil {
		t.Error("expected nil result for empty input")
	}
}

func TestGoogleEmbedding_BadKeyStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
		}))

		svc, err := NewGoogleEmbedding("bad-key", "text-embedding-004", server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = svc.EmbedQuery(context.Background(), "test")
		if !errors.Is(err, domain.ErrAPIKeyInvalid) {
			t.Errorf("status %d: expected ErrAPIKeyInvalid, got %v", status, err)
		}
		server.Close()
	}
}

func TestGoogleEmbedding_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, err := NewGoogleEmbedding("key", "text-embedding-004", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.EmbedQuery(context.Background(), "test")
	if !errors.Is(err, domain.ErrAIUnavailable) {
		t.Errorf("expected ErrAIUnavailable, got %v", err)
	}
}
