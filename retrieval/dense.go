package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
	"golang.org/x/time/rate"
)

// DenseRetriever ranks stored documents by cosine similarity to the
// embedded query.
type DenseRetriever struct {
	embedder      ai.Embedder
	documents     storage.DocumentRepository
	minSimilarity float64
	limiter       *rate.Limiter
	logger        *slog.Logger
}

var _ Retriever = (*DenseRetriever)(nil)

// DenseOption configures a DenseRetriever.
type DenseOption func(*DenseRetriever) error

// WithMinSimilarity drops documents below the given cosine similarity.
// Default is -1, which keeps every embedded document.
func WithMinSimilarity(min float64) DenseOption {
	return func(d *DenseRetriever) error {
		d.minSimilarity = min
		return nil
	}
}

// WithRateLimit throttles query embedding to limit calls per second with
// the given burst. Retrieve waits for a token and gives up when its context ends.
func WithRateLimit(limit rate.Limit, burst int) DenseOption {
	return func(d *DenseRetriever) error {
		if burst < 1 {
			return fmt.Errorf("rate limit burst must be positive, got %d", burst)
		}
		d.limiter = rate.NewLimiter(limit, burst)
		return nil
	}
}

// WithDenseLogger sets a custom logger.
// Default is slog.Default().
func WithDenseLogger(logger *slog.Logger) DenseOption {
	return func(d *DenseRetriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDenseRetriever creates a dense retriever over documents.
func NewDenseRetriever(embedder ai.Embedder, documents storage.DocumentRepository, opts ...DenseOption) (*DenseRetriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	d := &DenseRetriever{
		embedder:      embedder,
		documents:     documents,
		minSimilarity: -1,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.logger = d.logger.With("component", "dense-retriever")

	return d, nil
}

// Retrieve embeds query and returns the k nearest documents.
func (d *DenseRetriever) Retrieve(ctx context.Context, query string, k int) ([]*core.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	embedding, err := d.embedder.EmbedText(ctx, query)
	if err != nil {
		d.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	results, err := d.documents.FindSimilar(ctx, embedding, d.minSimilarity, k)
	if err != nil {
		d.logger.Error("error querying for similar documents", "err", err)
		return nil, err
	}

	d.logger.Debug("dense retrieval done", "query", query, "hits", len(results))
	return results, nil
}
