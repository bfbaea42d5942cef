package recommend

import (
	"sync"

	"github.com/poiesic/praxis/core"
)

// Breakdown holds the intermediate values of one practice's score.
type Breakdown struct {
	Similarity     float64 `json:"similarity"`
	ExactMatches   int     `json:"exact_matches"`
	FuzzyMatches   int     `json:"fuzzy_matches"`
	Raw            float64 `json:"raw"`
	UrgencyFactor  float64 `json:"urgency_factor"`
	FeedbackWeight float64 `json:"feedback_weight"`
	Score          float64 `json:"score"`
}

// MatchCount is the total symptom match count used in the raw score.
func (b Breakdown) MatchCount() int {
	return b.ExactMatches + b.FuzzyMatches
}

// Monitor provides hooks to observe a ranking.
type Monitor interface {
	Start(analysis *core.Analysis, catalogSize int)
	Skipped(practice *core.Practice, reason error)
	Scored(practice *core.Practice, breakdown Breakdown)
	Finish(results []*core.ScoredPractice)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Analysis, _ int)        {}
func (n *noopMonitor) Skipped(_ *core.Practice, _ error)    {}
func (n *noopMonitor) Scored(_ *core.Practice, _ Breakdown) {}
func (n *noopMonitor) Finish(_ []*core.ScoredPractice)      {}

// Monitors returns a Monitor calling each non-nil monitor in order.
func Monitors(monitors ...Monitor) Monitor {
	var fan multiMonitor
	for _, m := range monitors {
		if m != nil {
			fan = append(fan, m)
		}
	}
	switch len(fan) {
	case 0:
		return &noopMonitor{}
	case 1:
		return fan[0]
	}
	return fan
}

type multiMonitor []Monitor

func (f multiMonitor) Start(analysis *core.Analysis, catalogSize int) {
	for _, m := range f {
		m.Start(analysis, catalogSize)
	}
}

func (f multiMonitor) Skipped(practice *core.Practice, reason error) {
	for _, m := range f {
		m.Skipped(practice, reason)
	}
}

func (f multiMonitor) Scored(practice *core.Practice, breakdown Breakdown) {
	for _, m := range f {
		m.Scored(practice, breakdown)
	}
}

func (f multiMonitor) Finish(results []*core.ScoredPractice) {
	for _, m := range f {
		m.Finish(results)
	}
}

// Recorder is a Monitor that keeps every breakdown of the last ranking,
// keyed by practice name. It is safe for concurrent use but mixes rankings
// that run at the same time.
type Recorder struct {
	mu         sync.Mutex
	breakdowns map[string]Breakdown
	skipped    map[string]error
}

var _ Monitor = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		breakdowns: make(map[string]Breakdown),
		skipped:    make(map[string]error),
	}
}

// Start resets the recorded state.
func (r *Recorder) Start(_ *core.Analysis, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.breakdowns)
	clear(r.skipped)
}

// Skipped records why a practice was not scored.
func (r *Recorder) Skipped(practice *core.Practice, reason error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped[practice.Name] = reason
}

// Scored records a practice's breakdown.
func (r *Recorder) Scored(practice *core.Practice, breakdown Breakdown) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.breakdowns[practice.Name] = breakdown
}

// Finish is a no-op.
func (r *Recorder) Finish(_ []*core.ScoredPractice) {}

// Breakdown returns the recorded breakdown of a practice.
func (r *Recorder) Breakdown(practiceName string) (Breakdown, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.breakdowns[practiceName]
	return b, ok
}

// SkipReason returns why a practice was skipped, or nil.
func (r *Recorder) SkipReason(practiceName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped[practiceName]
}
