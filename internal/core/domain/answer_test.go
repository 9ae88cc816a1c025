package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildGroundedPrompt_PreservesDocumentOrder(t *testing.T) {
	docs := []RetrievedDocument{
		{Content: "On forgiveness", FileName: "forgiveness.md", Similarity: 0.92},
		{Content: "On grace", FileName: "grace.md", Similarity: 0.85},
		{Content: "On mercy", FileName: "mercy.md", Similarity: 0.71},
	}

	prompt := BuildGroundedPrompt("You are a theological expert.", "User's Question: what is forgiveness?", docs)

	first := strings.Index(prompt, "File: forgiveness.md")
	second := strings.Index(prompt, "File: grace.md")
	third := strings.Index(prompt, "File: mercy.md")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("expected all file labels in prompt, got:\n%s", prompt)
	}
	if !(first < second && second < third) {
		t.Errorf("document order not preserved: %d, %d, %d", first, second, third)
	}
	if !strings.Contains(prompt, "On grace") {
		t.Error("expected document content in prompt")
	}
	if !strings.Contains(prompt, "User's Question: what is forgiveness?") {
		t.Error("expected query in prompt")
	}
}

func TestBuildGroundedPrompt_Deterministic(t *testing.T) {
	docs := []RetrievedDocument{{Content: "c", FileName: "f.md"}}
	a := BuildGroundedPrompt("inst", "q", docs)
	b := BuildGroundedPrompt("inst", "q", docs)
	if a != b {
		t.Error("expected identical prompts for identical inputs")
	}
}

func TestParseStructuredAnswer(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     bool
		wantAnswer  string
		wantSources []string
	}{
		{
			name:        "valid object",
			input:       `{"answer": "Forgiveness is central.", "sourceFiles": ["a.md", "b.md"]}`,
			wantAnswer:  "Forgiveness is central.",
			wantSources: []string{"a.md", "b.md"},
		},
		{
			name:  "empty object",
			input: `{}`,
		},
		{
			name:  "null answer",
			input: `{"answer": null}`,
		},
		{
			name:       "sourceFiles not an array",
			input:      `{"answer": "text", "sourceFiles": "not-an-array"}`,
			wantAnswer: "text",
		},
		{
			name:       "answer not a string",
			input:      `{"answer": 42, "sourceFiles": []}`,
			wantAnswer: "",
		},
		{
			name:    "empty payload",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not json",
			input:   "I am not JSON",
			wantErr: true,
		},
		{
			name:    "json array instead of object",
			input:   `["a", "b"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ans, err := ParseStructuredAnswer([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedOutput) {
					t.Fatalf("expected ErrMalformedOutput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ans.Answer != tt.wantAnswer {
				t.Errorf("expected answer %q, got %q", tt.wantAnswer, ans.Answer)
			}
			if len(ans.SourceFiles) != len(tt.wantSources) {
				t.Fatalf("expected sources %v, got %v", tt.wantSources, ans.SourceFiles)
			}
			for i, s := range tt.wantSources {
				if ans.SourceFiles[i] != s {
					t.Errorf("expected source %q at %d, got %q", s, i, ans.SourceFiles[i])
				}
			}
		})
	}
}

func TestSanitizeAnswer_DropsFabricatedCitations(t *testing.T) {
	docs := []RetrievedDocument{
		{FileName: "fileA.md"},
		{FileName: "fileB.md"},
	}
	ans := StructuredAnswer{
		Answer:      "Grounded answer.",
		SourceFiles: []string{"fileA.md", "fileC.md"},
	}

	got := SanitizeAnswer(ans, "missing", docs)

	if got.Answer != "Grounded answer." {
		t.Errorf("answer should pass through, got %q", got.Answer)
	}
	if len(got.SourceFiles) != 1 || got.SourceFiles[0] != "fileA.md" {
		t.Errorf("expected [fileA.md], got %v", got.SourceFiles)
	}
}

func TestSanitizeAnswer_MissingAnswerText(t *testing.T) {
	got := SanitizeAnswer(StructuredAnswer{}, "The AI returned a response without an answer text.", nil)
	if got.Answer != "The AI returned a response without an answer text." {
		t.Errorf("expected fallback text, got %q", got.Answer)
	}
	if got.SourceFiles == nil || len(got.SourceFiles) != 0 {
		t.Errorf("expected empty non-nil source list, got %v", got.SourceFiles)
	}
}

func TestSanitizeAnswer_IsTotal(t *testing.T) {
	docs := []RetrievedDocument{{FileName: "x.md"}}
	inputs := []StructuredAnswer{
		{},
		{Answer: "", SourceFiles: nil},
		{Answer: "a", SourceFiles: []string{}},
		{Answer: "a", SourceFiles: []string{"x.md", "x.md", "y.md"}},
	}
	for _, in := range inputs {
		got := SanitizeAnswer(in, "fallback", docs)
		if got.Answer == "" {
			t.Errorf("sanitized answer must never be empty, input %+v", in)
		}
		if got.SourceFiles == nil {
			t.Errorf("sanitized source list must never be nil, input %+v", in)
		}
		for _, s := range got.SourceFiles {
			if s != "x.md" {
				t.Errorf("source %q survived sanitization but was never retrieved", s)
			}
		}
	}
}
