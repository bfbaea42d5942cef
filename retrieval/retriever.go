package retrieval

import (
	"context"

	"github.com/poiesic/praxis/core"
)

// Retriever returns the documents most relevant to a query, best first.
// Implementations must be safe for concurrent use.
type Retriever interface {
	// Retrieve returns at most k results for query.
	Retrieve(ctx context.Context, query string, k int) ([]*core.SearchResult, error)
}
