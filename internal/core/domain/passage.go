package domain

import "encoding/json"

// MatchType selects the passage search strategy
type MatchType string

const (
	MatchExact    MatchType = "exact"    // whole-verse lexical match
	MatchPartial  MatchType = "partial"  // substring lexical match
	MatchSemantic MatchType = "semantic" // model free-association (default)
)

// IsLexical reports whether this match type bypasses the AI pipeline
// entirely and searches the static corpus instead.
func (m MatchType) IsLexical() bool {
	return m == MatchExact || m == MatchPartial
}

// Passage is a located piece of scripture returned by passage search.
type Passage struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verses  []int  `json:"verses"`
	Text    string `json:"text"`
}

// Validate checks the passage against the canon: a known book, a chapter
// within that book, and at least one positive verse number.
func (p Passage) Validate() error {
	count, ok := chapterCounts[p.Book]
	if !ok {
		return ErrInvalidInput
	}
	if p.Chapter < 1 || p.Chapter > count {
		return ErrInvalidInput
	}
	if len(p.Verses) == 0 {
		return ErrInvalidInput
	}
	for _, v := range p.Verses {
		if v < 1 {
			return ErrInvalidInput
		}
	}
	return nil
}

// ParsePassages decodes model output expected to be a JSON array of
// passages. Returns ErrMalformedOutput when the payload is not an array;
// entries that fail validation are dropped rather than failing the batch.
func ParsePassages(data []byte) ([]Passage, error) {
	var parsed []Passage
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, ErrMalformedOutput
	}

	passages := make([]Passage, 0, len(parsed))
	for _, p := range parsed {
		if err := p.Validate(); err != nil {
			continue
		}
		passages = append(passages, p)
	}
	return passages, nil
}
