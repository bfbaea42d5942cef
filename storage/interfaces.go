package storage

import (
	"context"

	"github.com/poiesic/praxis/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// PracticeRepository provides operations for managing the practice catalog.
type PracticeRepository interface {
	Repository
	// AddPractices adds one or more practices to storage.
	// Practices with ID=0 get IDFromContent(Name).
	// Sets InsertedAt and UpdatedAt.
	// Returns ErrDuplicateKey if a practice with the same ID or name exists.
	AddPractices(ctx context.Context, practices ...*core.Practice) ([]*core.Practice, error)

	// UpdatePractices updates existing practices.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any practice doesn't exist.
	UpdatePractices(ctx context.Context, practices ...*core.Practice) ([]*core.Practice, error)

	// DeletePractices removes practices by their IDs.
	// Returns ErrNotFound if any practice doesn't exist.
	DeletePractices(ctx context.Context, ids ...core.ID) error

	// GetPractice retrieves a single practice by ID.
	// Returns ErrNotFound if the practice doesn't exist.
	GetPractice(ctx context.Context, id core.ID) (*core.Practice, error)

	// GetPracticeByName retrieves a practice by its name, ignoring case.
	// Returns ErrNotFound if no practice has that name.
	GetPracticeByName(ctx context.Context, name string) (*core.Practice, error)

	// ListPractices returns the whole catalog in a stable order.
	ListPractices(ctx context.Context) ([]*core.Practice, error)

	// CountPractices returns the number of practices in the catalog.
	CountPractices(ctx context.Context) (int, error)
}

// FeedbackRepository provides append-only storage for feedback records.
type FeedbackRepository interface {
	Repository
	// AddFeedback appends one or more feedback records.
	// IDs are always generated from a sequence.
	// CreatedAt is set to the current UTC time when zero.
	AddFeedback(ctx context.Context, records ...*core.Feedback) ([]*core.Feedback, error)

	// ListFeedback returns every feedback record in insertion order.
	ListFeedback(ctx context.Context) ([]*core.Feedback, error)

	// ListFeedbackByPractice returns the feedback of one practice in
	// insertion order.
	ListFeedbackByPractice(ctx context.Context, practiceName string) ([]*core.Feedback, error)
}

// DocumentRepository provides operations for knowledge base chunks.
type DocumentRepository interface {
	Repository
	// AddDocuments stores documents under IDFromContent(Content) when ID=0.
	// Documents whose ID is already stored are left untouched and omitted
	// from the returned slice.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments replaces existing documents.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// ListDocuments returns every stored document.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// FindSimilar finds documents similar to the given vector.
	// Returns documents with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float64, limit int) ([]*core.SearchResult, error)
}

// CheckpointRepository tracks which knowledge sources were ingested.
type CheckpointRepository interface {
	// SaveCheckpoint persists the checkpoint of a source.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the checkpoint of a source, or nil, nil when
	// the source was never ingested.
	LoadCheckpoint(ctx context.Context, source string) (*core.Checkpoint, error)
}
