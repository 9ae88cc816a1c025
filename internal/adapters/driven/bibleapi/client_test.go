package bibleapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OrtizDiego/versewise/internal/core/domain"
)

func TestSupports(t *testing.T) {
	client := NewClient("")

	for _, version := range []string{"kjv", "web", "asv", "darby", "ylt"} {
		if !client.Supports(version) {
			t.Errorf("expected %q to be supported", version)
		}
	}
	if client.Supports("esv") {
		t.Error("esv should not be supported")
	}
	if client.Supports("") {
		t.Error("empty version should not be supported")
	}
}

func TestVerses(t *testing.T) {
	var gotPath, gotTranslation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTranslation = r.URL.Query().Get("translation")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"verses": [
				{"verse": 1, "text": "In the beginning God created\nthe heaven and the earth.\n"},
				{"verse": 2, "text": "And the earth was without form, and void."}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	verses, err := client.Verses(context.Background(), "Genesis", 1, "kjv")
	if err != nil {
		t.Fatalf("Verses returned error: %v", err)
	}

	if gotPath != "/Genesis+1" {
		t.Errorf("path = %q, want /Genesis+1", gotPath)
	}
	if gotTranslation != "kjv" {
		t.Errorf("translation = %q, want kjv", gotTranslation)
	}
	if len(verses) != 2 {
		t.Fatalf("got %d verses, want 2", len(verses))
	}
	if verses[0] != "In the beginning God created the heaven and the earth." {
		t.Errorf("newlines not collapsed: %q", verses[0])
	}
}

func TestVersesNumberedBook(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"verses": [{"verse": 1, "text": "..."}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Verses(context.Background(), "1 Samuel", 3, "web"); err != nil {
		t.Fatalf("Verses returned error: %v", err)
	}

	if gotPath != "/1+Samuel+3" {
		t.Errorf("path = %q, want /1+Samuel+3", gotPath)
	}
}

func TestVersesUnsupportedVersion(t *testing.T) {
	client := NewClient("http://localhost:0")

	_, err := client.Verses(context.Background(), "Genesis", 1, "esv")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVersesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Verses(context.Background(), "Genesis", 99, "kjv")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVersesNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Verses(context.Background(), "Genesis", 1, "kjv")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVersesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Verses(context.Background(), "Genesis", 1, "kjv")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Error("502 should not map to ErrNotFound")
	}
}

func TestVersesEmptyChapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"verses": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Verses(context.Background(), "Genesis", 1, "kjv")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
