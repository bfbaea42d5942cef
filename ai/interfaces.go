package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ContextAnalyzer corrects a user's description and judges whether it says
// enough to recommend anything.
// Implementations must be thread-safe for concurrent use.
type ContextAnalyzer interface {
	// AssessContext returns the model's assessment of text.
	// Returns an error wrapping ErrMalformedResponse when the model answer
	// cannot be decoded, or the transport error when the call fails.
	AssessContext(ctx context.Context, text string) (*ContextAssessment, error)
}

// ContextAssessment is the outcome of a context analysis.
type ContextAssessment struct {
	// CorrectedText is the input with spelling and grammar fixed.
	CorrectedText string `json:"corrected_text"`

	// ContextSufficient is the model's own verdict.
	ContextSufficient bool `json:"context_sufficient"`

	// ConfidenceScore rates how sufficient the context is, from 0 to 1.
	ConfidenceScore float64 `json:"confidence_score"`

	// ClarifyingQuestion asks for more details when the context is insufficient.
	ClarifyingQuestion string `json:"clarifying_question"`

	// Reasoning explains the verdict.
	Reasoning string `json:"reasoning"`
}

// AdviceWriter turns retrieved context into a personalised recommendation.
// Implementations must be thread-safe for concurrent use.
type AdviceWriter interface {
	// WriteAdvice generates the recommendation text for req.
	WriteAdvice(ctx context.Context, req AdviceRequest) (string, error)
}

// AdviceRequest is everything an AdviceWriter needs.
type AdviceRequest struct {
	// Needs describes what the user is looking for.
	Needs string

	// Practices names the recommended practices, best first.
	Practices []string

	// Context is the retrieved knowledge, one block per practice.
	Context string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// ContextAnalyzer returns the input analysis service.
	ContextAnalyzer() ContextAnalyzer

	// AdviceWriter returns the advice generation service.
	AdviceWriter() AdviceWriter

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
