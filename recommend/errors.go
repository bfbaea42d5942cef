package recommend

import "errors"

var (
	// ErrPracticeRepositoryRequired is returned when a practice repository is not provided.
	ErrPracticeRepositoryRequired = errors.New("practice repository required")

	// ErrFeedbackRepositoryRequired is returned when a feedback repository is not provided.
	ErrFeedbackRepositoryRequired = errors.New("feedback repository required")

	// ErrInvalidTopN is returned when the result limit is not positive.
	ErrInvalidTopN = errors.New("top N must be positive")

	// ErrInvalidCacheTTL is returned when the catalog cache TTL is not positive.
	ErrInvalidCacheTTL = errors.New("catalog cache TTL must be positive")

	// ErrCatalogUnavailable is returned when the catalog cannot be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
