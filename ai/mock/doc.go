// Package mock provides test double implementations of AI service interfaces.
//
// The mocks let tests run without an embedding or chat server and give
// deterministic answers:
//
//   - MockEmbedder: unit vectors derived from an FNV hash of the text
//   - MockContextAnalyzer: accepts every input with a confidence of 0.9
//   - MockAdviceWriter: renders a short markdown summary of the request
//   - MockProvider: aggregates the three
//
// Every mock exposes function fields to override its behavior and a call
// counter for assertions:
//
//	provider := mock.NewMockProvider()
//	provider.GetMockAnalyzer().AssessContextFunc = func(ctx context.Context, text string) (*ai.ContextAssessment, error) {
//	    return &ai.ContextAssessment{CorrectedText: text, ConfidenceScore: 0.1}, nil
//	}
package mock
