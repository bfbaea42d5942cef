package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidPractice indicates a Practice failed validation.
	ErrInvalidPractice = errors.New("invalid practice")

	// ErrInvalidFeedback indicates a Feedback failed validation.
	ErrInvalidFeedback = errors.New("invalid feedback")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidAnalysis indicates an Analysis failed validation.
	ErrInvalidAnalysis = errors.New("invalid analysis")

	// ErrEmptyPracticeName indicates the practice Name field is empty.
	ErrEmptyPracticeName = errors.New("practice name cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidRating indicates a rating outside of 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidUrgency indicates an urgency level outside of [0, 1].
	ErrInvalidUrgency = errors.New("urgency level must be between 0 and 1")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrDimensionMismatch indicates two vectors of different lengths were compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyVector indicates a vector with no components.
	ErrEmptyVector = errors.New("vector is empty")
)
