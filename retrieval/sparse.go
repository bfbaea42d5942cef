package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
	"github.com/poiesic/praxis/textproc"
)

// SparseRetriever ranks a fixed corpus with BM25. The index is built once
// and never changes, so a SparseRetriever is safe for concurrent use.
type SparseRetriever struct {
	docs   []*core.Document
	index  *bm25Index
	logger *slog.Logger
}

var _ Retriever = (*SparseRetriever)(nil)

// SparseOption configures a SparseRetriever.
type SparseOption func(*SparseRetriever) error

// WithSparseLogger sets a custom logger.
// Default is slog.Default().
func WithSparseLogger(logger *slog.Logger) SparseOption {
	return func(s *SparseRetriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSparseRetriever indexes docs. Returns ErrEmptyCorpus when docs is empty.
func NewSparseRetriever(docs []*core.Document, opts ...SparseOption) (*SparseRetriever, error) {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	index, err := newBM25Index(texts)
	if err != nil {
		return nil, err
	}

	s := &SparseRetriever{
		docs:   docs,
		index:  index,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "sparse-retriever")
	s.logger.Debug("BM25 index built", "documents", len(docs), "terms", len(index.idf))

	return s, nil
}

// NewSparseRetrieverFromRepository indexes every stored document.
func NewSparseRetrieverFromRepository(ctx context.Context, documents storage.DocumentRepository, opts ...SparseOption) (*SparseRetriever, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	docs, err := documents.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	return NewSparseRetriever(docs, opts...)
}

// Size returns the number of indexed documents.
func (s *SparseRetriever) Size() int {
	return s.index.size()
}

// Retrieve returns the k best BM25 matches. Documents sharing no term with
// the query are not returned.
func (s *SparseRetriever) Retrieve(ctx context.Context, query string, k int) ([]*core.SearchResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits := s.index.top(textproc.Terms(query), k)
	results := make([]*core.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = &core.SearchResult{
			Document: s.docs[hit.doc],
			Score:    hit.score,
		}
	}

	s.logger.Debug("sparse retrieval done", "query", query, "hits", len(results))
	return results, nil
}
