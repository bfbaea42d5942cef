// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/praxis/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	embedder *MockEmbedder
	analyzer *MockContextAnalyzer
	writer   *MockAdviceWriter
}

var _ ai.AIProvider = (*MockProvider)(nil)

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns the concrete type so tests can reach the mocks through
// GetMockEmbedder, GetMockAnalyzer and GetMockWriter.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		analyzer: NewMockContextAnalyzer(),
		writer:   NewMockAdviceWriter(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// Nil services are replaced by defaults.
func NewMockProviderWithServices(embedder *MockEmbedder, analyzer *MockContextAnalyzer, writer *MockAdviceWriter) *MockProvider {
	p := NewMockProvider()
	if embedder != nil {
		p.embedder = embedder
	}
	if analyzer != nil {
		p.analyzer = analyzer
	}
	if writer != nil {
		p.writer = writer
	}
	return p
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// ContextAnalyzer returns the mock context analyzer.
func (p *MockProvider) ContextAnalyzer() ai.ContextAnalyzer {
	return p.analyzer
}

// AdviceWriter returns the mock advice writer.
func (p *MockProvider) AdviceWriter() ai.AdviceWriter {
	return p.writer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAnalyzer returns the underlying mock context analyzer.
func (p *MockProvider) GetMockAnalyzer() *MockContextAnalyzer {
	return p.analyzer
}

// GetMockWriter returns the underlying mock advice writer.
func (p *MockProvider) GetMockWriter() *MockAdviceWriter {
	return p.writer
}
