package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/poiesic/praxis/ai"
)

// DefaultConfidence is the confidence MockContextAnalyzer reports by default.
const DefaultConfidence = 0.9

// MockContextAnalyzer is a test double for ai.ContextAnalyzer.
type MockContextAnalyzer struct {
	// AssessContextFunc is called by AssessContext if set.
	AssessContextFunc func(ctx context.Context, text string) (*ai.ContextAssessment, error)

	callCount atomic.Int64
}

var _ ai.ContextAnalyzer = (*MockContextAnalyzer)(nil)

// NewMockContextAnalyzer creates an analyzer that accepts every input unchanged.
func NewMockContextAnalyzer() *MockContextAnalyzer {
	return &MockContextAnalyzer{}
}

// AssessContext returns the custom assessment, or a sufficient one echoing text.
func (m *MockContextAnalyzer) AssessContext(ctx context.Context, text string) (*ai.ContextAssessment, error) {
	m.callCount.Add(1)

	if m.AssessContextFunc != nil {
		return m.AssessContextFunc(ctx, text)
	}
	return &ai.ContextAssessment{
		CorrectedText:     text,
		ContextSufficient: true,
		ConfidenceScore:   DefaultConfidence,
		Reasoning:         "mock",
	}, nil
}

// CallCount returns the number of times AssessContext was called.
func (m *MockContextAnalyzer) CallCount() int {
	return int(m.callCount.Load())
}

// MockAdviceWriter is a test double for ai.AdviceWriter.
type MockAdviceWriter struct {
	// WriteAdviceFunc is called by WriteAdvice if set.
	WriteAdviceFunc func(ctx context.Context, req ai.AdviceRequest) (string, error)

	callCount atomic.Int64
	last      atomic.Pointer[ai.AdviceRequest]
}

var _ ai.AdviceWriter = (*MockAdviceWriter)(nil)

// NewMockAdviceWriter creates a writer with default behavior.
func NewMockAdviceWriter() *MockAdviceWriter {
	return &MockAdviceWriter{}
}

// WriteAdvice returns the custom answer, or a heading naming the first two practices.
func (m *MockAdviceWriter) WriteAdvice(ctx context.Context, req ai.AdviceRequest) (string, error) {
	m.callCount.Add(1)
	m.last.Store(&req)

	if m.WriteAdviceFunc != nil {
		return m.WriteAdviceFunc(ctx, req)
	}
	if len(req.Practices) < 2 {
		return "", fmt.Errorf("advice needs two practices, got %d", len(req.Practices))
	}
	return fmt.Sprintf("# Recommandation Personnalisée : %s et %s\n\n%s",
		req.Practices[0], req.Practices[1], strings.TrimSpace(req.Needs)), nil
}

// CallCount returns the number of times WriteAdvice was called.
func (m *MockAdviceWriter) CallCount() int {
	return int(m.callCount.Load())
}

// LastRequest returns the last request received, or nil.
func (m *MockAdviceWriter) LastRequest() *ai.AdviceRequest {
	return m.last.Load()
}
