package ai

import "errors"

var (
	// ErrMalformedResponse indicates a model answer that could not be decoded.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmptyResponse indicates a model returned no content.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrInvalidConfig indicates an incomplete or inconsistent configuration.
	ErrInvalidConfig = errors.New("invalid ai config")
)
