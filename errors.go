package praxis

import "errors"

var (
	// ErrEmptyInput is returned when a request carries no text.
	ErrEmptyInput = errors.New("input is empty")

	// ErrAnalysisFailed is returned when the input could not be turned into
	// an embedding.
	ErrAnalysisFailed = errors.New("analysis produced no embedding")

	// ErrFeedbackRequired is returned when SubmitFeedback gets nil.
	ErrFeedbackRequired = errors.New("feedback required")
)
