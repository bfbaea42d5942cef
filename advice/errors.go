package advice

import "errors"

var (
	// ErrRetrieverRequired is returned when an advisor has no retriever.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrAdviceWriterRequired is returned when an advisor has no advice writer.
	ErrAdviceWriterRequired = errors.New("advice writer is required")

	// ErrNotEnoughPractices is returned when advice is asked for fewer than two practices.
	ErrNotEnoughPractices = errors.New("advice needs at least two practices")

	// ErrInvalidK is returned when the document count is not positive.
	ErrInvalidK = errors.New("document count must be positive")
)
