package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RetrievedDocument is one row of library content matched against a query
// embedding. The store owns the data; the core only sees a transient copy,
// ordered by descending similarity.
type RetrievedDocument struct {
	Content    string  `json:"content"`
	FileName   string  `json:"file_name"`
	Similarity float64 `json:"similarity"`
}

// StructuredAnswer is the model's grounded response: free text plus the
// file names of the documents it claims to have used.
type StructuredAnswer struct {
	Answer      string   `json:"answer"`
	SourceFiles []string `json:"sourceFiles"`
}

// BuildGroundedPrompt assembles the prompt for one generation call.
// Document order is preserved exactly as retrieved (similarity-descending);
// models are sensitive to context order. Each document is labelled with its
// file name inline so the model can cite it. Pure: no I/O, deterministic.
func BuildGroundedPrompt(instructions, query string, docs []RetrievedDocument) string {
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(query)
	b.WriteString("\n\nRelevant Documents:\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "---\nFile: %s\nContent:\n%s\n---\n", doc.FileName, doc.Content)
	}
	b.WriteString("\nNow, please provide your thoughtful response in the specified JSON format.")
	return b.String()
}

// rawAnswer defers field decoding so a junk field does not fail the whole
// object. Field-level problems are coerced here and cleaned up by Sanitize.
type rawAnswer struct {
	Answer      json.RawMessage `json:"answer"`
	SourceFiles json.RawMessage `json:"sourceFiles"`
}

// ParseStructuredAnswer decodes raw model output into a StructuredAnswer.
// Returns ErrMalformedOutput when the payload is empty or not a JSON object;
// callers recover from that with a canned answer rather than propagating.
// A present-but-wrong-typed field degrades to its zero value instead.
func ParseStructuredAnswer(data []byte) (StructuredAnswer, error) {
	var raw rawAnswer
	if len(data) == 0 {
		return StructuredAnswer{}, fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return StructuredAnswer{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	var ans StructuredAnswer
	if len(raw.Answer) > 0 {
		// Ignore a non-string answer field; Sanitize substitutes the fallback.
		_ = json.Unmarshal(raw.Answer, &ans.Answer)
	}
	if len(raw.SourceFiles) > 0 {
		_ = json.Unmarshal(raw.SourceFiles, &ans.SourceFiles)
	}
	return ans, nil
}

// SanitizeAnswer makes a model answer safe to show. Total: every input,
// including degenerate ones, produces a valid StructuredAnswer.
//
//  1. An absent answer text is replaced with missingText.
//  2. A nil source list becomes an empty one.
//  3. Claimed sources are intersected with the files actually retrieved for
//     this request; fabricated citations are dropped silently.
func SanitizeAnswer(ans StructuredAnswer, missingText string, docs []RetrievedDocument) StructuredAnswer {
	if ans.Answer == "" {
		ans.Answer = missingText
	}

	retrieved := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		retrieved[doc.FileName] = struct{}{}
	}

	kept := make([]string, 0, len(ans.SourceFiles))
	for _, name := range ans.SourceFiles {
		if _, ok := retrieved[name]; ok {
			kept = append(kept, name)
		}
	}
	ans.SourceFiles = kept

	return ans
}
