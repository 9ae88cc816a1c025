package driven

import (
	"context"
	"encoding/json"
)

// OutputShape hints the generator at the expected JSON top-level shape.
type OutputShape string

const (
	OutputObject OutputShape = "object" // single structured answer
	OutputArray  OutputShape = "array"  // list of passages
)

// AnswerGenerator invokes a generative language model in JSON mode.
// The raw payload comes back undecoded: whether it conforms to the
// expected schema is decided by the domain parse step, so that transport
// failures and malformed output stay distinct failure shapes.
type AnswerGenerator interface {
	// Generate runs one model invocation with the given prompt.
	// Errors wrap domain.ErrAIUnavailable or domain.ErrAPIKeyInvalid.
	Generate(ctx context.Context, prompt string, shape OutputShape) (json.RawMessage, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the generation service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the generator
	Close() error
}
