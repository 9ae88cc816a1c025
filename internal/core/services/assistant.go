package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OrtizDiego/versewise/internal/core/domain"
	"github.com/OrtizDiego/versewise/internal/core/ports/driven"
	"github.com/OrtizDiego/versewise/internal/core/ports/driving"
	"github.com/OrtizDiego/versewise/internal/runtime"
)

// Ensure assistantService implements AssistantService
var _ driving.AssistantService = (*assistantService)(nil)

// callTimeout bounds each external call (embedding, retrieval, generation).
// A timeout surfaces like any other transport failure; nothing is retried.
const callTimeout = 45 * time.Second

const questionInstructions = `You are a friendly and wise theological expert. Your goal is to help users understand complex topics by providing clear, elaborate, and conversational answers.

Engage the user in a thoughtful way. Your answer should be comprehensive and well-structured. Start with a friendly opening. Use paragraphs to explain concepts and feel free to use bullet points or lists if it helps clarify information.

Base your answer ONLY on the content of the provided documents. Do not use any other information.

If you cannot answer the question based on the documents, politely explain that the provided library does not contain the information needed to answer the question fully.

Your final output must be a JSON object that includes two keys: "answer" (your full, conversational response) and "sourceFiles" (an array of the file names from the provided documents that you used).`

const interpretInstructions = `You are a friendly and knowledgeable Bible scholar. Your goal is to help users understand Bible verses by providing clear, elaborate, and conversational interpretations based on a curated library.

Engage the user in a thoughtful way. Start with a friendly opening. Your interpretation should be comprehensive and well-structured, using only the information available in the provided library documents.

If the library doesn't contain relevant information, politely explain that you cannot provide an interpretation based on the available materials.

Your final output must be a JSON object that includes two keys: "answer" (your full, conversational response) and "sourceFiles" (an array of the file names from the provided documents that you used).`

const passageInstructions = `You are a helpful assistant that helps users find relevant Bible passages based on their query.

Given the following query, find relevant Bible passages:
%s

Return a JSON array of Bible passages that are relevant to the query. Each passage should include the book, chapter, verse(s), and text.
Make sure the verses array contains numbers, not strings.`

// ragFlow parameterizes one grounded question-answering pipeline. The two
// RAG flows share the exact same state machine and differ only in wording.
type ragFlow struct {
	instructions  string
	query         string // embedded for retrieval and shown to the model
	noResults     string // canned answer when nothing clears the threshold
	troubleAnswer string // canned answer on malformed model output
	missingText   string // substituted when the model omits the text field
}

// assistantService implements the AssistantService interface
type assistantService struct {
	documentStore driven.DocumentStore
	corpus        driven.PassageCorpus
	services      *runtime.Services // Dynamic AI services
	logger        *slog.Logger
}

// NewAssistantService creates a new AssistantService.
// AI services (embedding, generation) are accessed dynamically via
// runtime.Services so admins can reconfigure providers without a restart.
func NewAssistantService(
	documentStore driven.DocumentStore,
	corpus driven.PassageCorpus,
	services *runtime.Services,
	logger *slog.Logger,
) driving.AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &assistantService{
		documentStore: documentStore,
		corpus:        corpus,
		services:      services,
		logger:        logger,
	}
}

// AskQuestion answers a theological question from the interpretation library
func (s *assistantService) AskQuestion(ctx context.Context, question string) (*domain.StructuredAnswer, error) {
	return s.runRAG(ctx, ragFlow{
		instructions:  questionInstructions,
		query:         "User's Question: " + question,
		noResults:     "I couldn't find any relevant information in my knowledge base to answer your question. Please try rephrasing it.",
		troubleAnswer: "I'm sorry, I had trouble generating a complete response. The AI model might be overloaded. Could you please try asking again?",
		missingText:   "The AI returned a response without an answer text.",
	})
}

// InterpretVerse explains a verse reference in light of a follow-up question
func (s *assistantService) InterpretVerse(ctx context.Context, verseReference, userQuestion string) (*domain.StructuredAnswer, error) {
	return s.runRAG(ctx, ragFlow{
		instructions:  interpretInstructions,
		query:         fmt.Sprintf("Interpretation for %s: %s", verseReference, userQuestion),
		noResults:     "I couldn't find any relevant information in my knowledge base to answer this. Please try rephrasing your question.",
		troubleAnswer: "I'm sorry, I had trouble generating a complete interpretation. The AI model might be overloaded. Could you please try asking again?",
		missingText:   "The AI returned a response without an interpretation text.",
	})
}

// runRAG drives one request through the shared pipeline:
// embed -> retrieve -> [empty: canned answer] -> prompt -> generate ->
// parse -> sanitize. Linear, no retries, no backtracking; the first
// unrecoverable error terminates the request.
func (s *assistantService) runRAG(ctx context.Context, flow ragFlow) (*domain.StructuredAnswer, error) {
	embedder := s.services.EmbeddingService()
	generator := s.services.Generator()
	if embedder == nil || generator == nil {
		return nil, domain.ErrAPIKeyInvalid
	}

	embedCtx, cancel := context.WithTimeout(ctx, callTimeout)
	embedding, err := embedder.EmbedQuery(embedCtx, flow.query)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	threshold, limit := s.services.Retrieval()
	matchCtx, cancel := context.WithTimeout(ctx, callTimeout)
	docs, err := s.documentStore.MatchDocuments(matchCtx, embedding, threshold, limit)
	cancel()
	if err != nil {
		s.logger.Error("document retrieval failed", "error", err)
		return nil, fmt.Errorf("match documents: %w", err)
	}

	// Without grounding material the model must never run: generating
	// ungrounded answers is both wrong and wasteful.
	if len(docs) == 0 {
		return &domain.StructuredAnswer{
			Answer:      flow.noResults,
			SourceFiles: []string{},
		}, nil
	}

	prompt := domain.BuildGroundedPrompt(flow.instructions, flow.query, docs)

	genCtx, cancel := context.WithTimeout(ctx, callTimeout)
	raw, err := generator.Generate(genCtx, prompt, driven.OutputObject)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	parsed, err := domain.ParseStructuredAnswer(raw)
	if errors.Is(err, domain.ErrMalformedOutput) {
		s.logger.Warn("model returned malformed output", "model", generator.Model())
		return &domain.StructuredAnswer{
			Answer:      flow.troubleAnswer,
			SourceFiles: []string{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	sanitized := domain.SanitizeAnswer(parsed, flow.missingText, docs)
	return &sanitized, nil
}

// SearchPassages finds Bible passages for a query
func (s *assistantService) SearchPassages(ctx context.Context, query string, mode domain.MatchType) ([]domain.Passage, error) {
	// Literal search modes go straight to the corpus; the AI pipeline is
	// bypassed entirely.
	if mode.IsLexical() {
		searchCtx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		passages, err := s.corpus.SearchText(searchCtx, query, mode)
		if err != nil {
			s.logger.Error("corpus search failed", "error", err)
			return nil, fmt.Errorf("corpus search: %w", err)
		}
		return passages, nil
	}

	generator := s.services.Generator()
	if generator == nil {
		return nil, domain.ErrAPIKeyInvalid
	}

	genCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	raw, err := generator.Generate(genCtx, fmt.Sprintf(passageInstructions, query), driven.OutputArray)
	if err != nil {
		return nil, fmt.Errorf("generate passages: %w", err)
	}

	passages, err := domain.ParsePassages(raw)
	if errors.Is(err, domain.ErrMalformedOutput) {
		s.logger.Warn("model did not return a passage array", "model", generator.Model())
		return []domain.Passage{}, nil
	}
	if err != nil {
		return nil, err
	}
	return passages, nil
}
