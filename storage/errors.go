package storage

import "errors"

var (
	// ErrNotFound indicates that no record has the requested key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates an insert whose key is already taken.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidQuery indicates a similarity query with unusable parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrSerializationFailed indicates a record that could not be encoded
	// or decoded.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates a stored value shorter than its format requires.
	ErrTruncatedData = errors.New("truncated data")

	// ErrInvalidLength indicates a length prefix that cannot match the data
	// following it.
	ErrInvalidLength = errors.New("invalid length prefix")
)
