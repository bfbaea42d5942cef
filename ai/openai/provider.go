package openai

import (
	"log/slog"

	"github.com/poiesic/praxis/ai"
)

// Provider bundles the embedder, the context analyzer and the advice
// writer built from one configuration.
type Provider struct {
	embedder *Embedder
	analyzer *ContextAnalyzer
	writer   *AdviceWriter
}

var _ ai.AIProvider = (*Provider)(nil)

// NewProvider validates config and creates every service. Embeddings go to
// config.EmbeddingHost; analysis and advice go to config.ChatHost.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	p := &Provider{}
	var err error
	if p.embedder, err = newEmbedder(config); err != nil {
		return nil, err
	}
	if p.analyzer, err = newContextAnalyzer(config); err != nil {
		return nil, err
	}
	if p.writer, err = newAdviceWriter(config); err != nil {
		return nil, err
	}

	slog.Default().Debug("openai provider ready",
		"component", "openai-provider",
		"embedding_host", config.EmbeddingHost,
		"chat_host", config.ChatHost,
		"chat_model", config.ChatModel)
	return p, nil
}

func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

func (p *Provider) ContextAnalyzer() ai.ContextAnalyzer {
	return p.analyzer
}

func (p *Provider) AdviceWriter() ai.AdviceWriter {
	return p.writer
}

// Close is a no-op; the HTTP clients hold no resources that need releasing.
func (p *Provider) Close() error {
	return nil
}
