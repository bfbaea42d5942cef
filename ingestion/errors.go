package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidChunking is returned when chunk size or overlap are inconsistent.
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrEmptySource is returned when a source has no text.
	ErrEmptySource = errors.New("source has no text")
)
