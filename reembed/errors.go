package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrStoreRequired is returned when a Reembedder has no store
	ErrStoreRequired = errors.New("store is required")

	// ErrEmbedderRequired is returned when a Reembedder has no embedder
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmbeddingMismatch is returned when the embedder returns a different
	// number of vectors than texts
	ErrEmbeddingMismatch = errors.New("embedding count mismatch")
)
