package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
)

// embeddingProcessor generates embeddings for stored documents.
type embeddingProcessor struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	logger    *slog.Logger
}

func newEmbeddingProcessor(documents storage.DocumentRepository, embedder ai.Embedder, logger *slog.Logger) *embeddingProcessor {
	return &embeddingProcessor{
		documents: documents,
		embedder:  embedder,
		logger:    logger.With("processor", "embeddings"),
	}
}

// process embeds one batch of documents and stores their vectors.
func (ep *embeddingProcessor) process(ctx context.Context, docs []*core.Document) error {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.EmbeddingText()
	}

	ep.logger.Debug("generating embeddings for documents", "documents", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(docs) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(docs), len(embeddings))
	}

	for i := range embeddings {
		docs[i].SetVector(embeddings[i])
	}

	_, err = ep.documents.UpdateDocuments(ctx, docs...)
	return err
}
