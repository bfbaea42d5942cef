package retrieval

import "errors"

var (
	// ErrEmbedderRequired is returned when a dense retriever has no embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrDocumentRepositoryRequired is returned when a retriever has no document repository.
	ErrDocumentRepositoryRequired = errors.New("document repository is required")

	// ErrRetrieverRequired is returned when an ensemble has no dense retriever.
	ErrRetrieverRequired = errors.New("dense retriever is required")

	// ErrEmptyCorpus is returned when a BM25 index is built without documents.
	ErrEmptyCorpus = errors.New("cannot build BM25 index from an empty corpus")

	// ErrInvalidWeights is returned when fusion weights are negative or both zero.
	ErrInvalidWeights = errors.New("invalid fusion weights")

	// ErrInvalidK is returned when a result count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrRetrievalFailed is returned when every retriever of an ensemble failed.
	ErrRetrievalFailed = errors.New("all retrievers failed")
)
