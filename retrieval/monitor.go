package retrieval

import "github.com/poiesic/praxis/core"

// Monitor provides hooks to observe an ensemble retrieval.
// Implement this interface to inspect the intermediate rankings.
// Dense and sparse hooks may be called concurrently.
type Monitor interface {
	Start(query string)
	AfterDense(results []*core.SearchResult)
	AfterSparse(results []*core.SearchResult)
	RetrieverFailed(name string, err error)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                     {}
func (n *noopMonitor) AfterDense(_ []*core.SearchResult)  {}
func (n *noopMonitor) AfterSparse(_ []*core.SearchResult) {}
func (n *noopMonitor) RetrieverFailed(_ string, _ error)  {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)      {}
