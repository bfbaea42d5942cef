package intake

import "errors"

var (
	// ErrContextAnalyzerRequired is returned when a validator has no context analyzer.
	ErrContextAnalyzerRequired = errors.New("context analyzer is required")

	// ErrInvalidThreshold is returned when the confidence threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("confidence threshold must be within [0, 1]")
)
