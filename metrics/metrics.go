// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/recommend"
	"github.com/poiesic/praxis/retrieval"
	"github.com/prometheus/client_golang/prometheus"
)

// Input types of recommendation requests.
const (
	InputFreeText      = "free_text"
	InputQuestionnaire = "questionnaire"
)

// Error types counted by api_errors_total.
const (
	ErrorScreening      = "screening"
	ErrorAnalysis       = "nlp_analysis"
	ErrorRecommendation = "recommendation"
	ErrorAdvice         = "rag_generation"
	ErrorFeedback       = "feedback_storage"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	latency   prometheus.Histogram
	feedback  *prometheus.CounterVec
	retrieved prometheus.Histogram
	errors    *prometheus.CounterVec
	skipped   prometheus.Counter
}

// New creates the collectors and registers them with reg.
// A nil reg means prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests.",
		}, []string{"input_type", "match_found"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recommendation_latency_seconds",
			Help:    "Latency of recommendation requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_rating_total",
			Help: "Total number of feedback submissions by rating.",
		}, []string{"rating"}),
		retrieved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rag_retrieved_documents_count",
			Help:    "Number of documents retrieved for advice context.",
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of critical API errors.",
		}, []string{"error_type"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_skipped_practices_total",
			Help: "Total number of catalog practices left out of a ranking.",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency, m.feedback, m.retrieved, m.errors, m.skipped} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}
	return m, nil
}

// CountRequest counts a ranked request of the given input type.
func (m *Metrics) CountRequest(inputType string, matchFound bool) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(inputType, strconv.FormatBool(matchFound)).Inc()
}

// ObserveSince records the latency of a request started at start.
func (m *Metrics) ObserveSince(start time.Time) {
	if m == nil {
		return
	}
	m.latency.Observe(time.Since(start).Seconds())
}

// CountFeedback counts a stored rating.
func (m *Metrics) CountFeedback(rating int) {
	if m == nil {
		return
	}
	m.feedback.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// CountError counts a failure of the given type.
func (m *Metrics) CountError(errorType string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(errorType).Inc()
}

// Ranking returns a recommend.Monitor counting skipped practices.
func (m *Metrics) Ranking() recommend.Monitor {
	return &rankingMonitor{m: m}
}

// Retrieval returns a retrieval.Monitor recording how many documents each
// retrieval returns and counting retriever failures as
// "<name>_retrieval" errors.
func (m *Metrics) Retrieval() retrieval.Monitor {
	return &retrievalMonitor{m: m}
}

type rankingMonitor struct {
	m *Metrics
}

var _ recommend.Monitor = (*rankingMonitor)(nil)

func (r *rankingMonitor) Start(_ *core.Analysis, _ int)                  {}
func (r *rankingMonitor) Scored(_ *core.Practice, _ recommend.Breakdown) {}
func (r *rankingMonitor) Finish(_ []*core.ScoredPractice)                {}

func (r *rankingMonitor) Skipped(_ *core.Practice, _ error) {
	if r.m == nil {
		return
	}
	r.m.skipped.Inc()
}

type retrievalMonitor struct {
	m *Metrics
}

var _ retrieval.Monitor = (*retrievalMonitor)(nil)

func (r *retrievalMonitor) Start(_ string)                     {}
func (r *retrievalMonitor) AfterDense(_ []*core.SearchResult)  {}
func (r *retrievalMonitor) AfterSparse(_ []*core.SearchResult) {}

func (r *retrievalMonitor) RetrieverFailed(name string, _ error) {
	r.m.CountError(name + "_retrieval")
}

func (r *retrievalMonitor) Finish(results []*core.SearchResult) {
	if r.m == nil {
		return
	}
	r.m.retrieved.Observe(float64(len(results)))
}
