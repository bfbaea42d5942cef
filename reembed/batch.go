package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/praxis/ai"
)

// BatchProcessor embeds batches of records and writes them back to a store.
type BatchProcessor[T Record] struct {
	store          Store[T]
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a batch processor. Embedding calls are retried
// up to maxRetries times with exponential backoff starting at retryBaseDelay.
func NewBatchProcessor[T Record](store Store[T], embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor[T] {
	return &BatchProcessor[T]{
		store:          store,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds records, normalizes the vectors and updates the store.
// Nothing is written when embedding fails.
func (bp *BatchProcessor[T]) Process(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.EmbeddingText()
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("embedding batch after %d attempts: %w", bp.maxRetries, err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingMismatch, len(records), len(vectors))
	}

	for i, r := range records {
		r.SetVector(NormalizeVector(vectors[i]))
	}
	if err := bp.store.Update(ctx, records...); err != nil {
		return fmt.Errorf("updating batch: %w", err)
	}
	return nil
}
