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


package praxis

import (
	"log/slog"
	"time"

	"github.com/poiesic/praxis/config"
	"github.com/poiesic/praxis/intake"
	"github.com/poiesic/praxis/metrics"
	"github.com/poiesic/praxis/recommend"
	"github.com/poiesic/praxis/retrieval"
)

// ServiceOption configures a Service and its retriever.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	topN         int
	cacheTTL     time.Duration
	monitor      recommend.Monitor
	metrics      *metrics.Metrics
	threshold    float64
	k            int
	denseWeight  float64
	sparseWeight float64
	embedRate    float64
	embedBurst   int
	logger       *slog.Logger
}

func newServiceOptions(opts []ServiceOption) *serviceOptions {
	o := &serviceOptions{
		topN:         recommend.DefaultTopN,
		threshold:    intake.DefaultThreshold,
		k:            retrieval.DefaultK,
		denseWeight:  retrieval.DefaultWeight,
		sparseWeight: retrieval.DefaultWeight,
		embedBurst:   1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *serviceOptions) loggerOr(fallback *slog.Logger) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return fallback
}

// WithSettings applies the recommendation, retrieval and screening
// settings.
func WithSettings(s *config.Settings) ServiceOption {
	return func(o *serviceOptions) {
		o.topN = s.Recommend.TopN
		o.cacheTTL = s.Recommend.CatalogCacheTTL
		o.threshold = s.Screening.Threshold
		o.k = s.Retrieval.K
		o.denseWeight = s.Retrieval.DenseWeight
		o.sparseWeight = s.Retrieval.SparseWeight
		o.embedRate = s.Retrieval.EmbedRate
		o.embedBurst = s.Retrieval.EmbedBurst
	}
}

// WithTopN sets the number of recommended practices.
func WithTopN(n int) ServiceOption {
	return func(o *serviceOptions) { o.topN = n }
}

// WithCatalogCacheTTL caches the catalog for ttl. Zero disables the cache.
func WithCatalogCacheTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) { o.cacheTTL = ttl }
}

// WithMonitor installs a ranking monitor, for example a recommend.Recorder.
func WithMonitor(monitor recommend.Monitor) ServiceOption {
	return func(o *serviceOptions) { o.monitor = monitor }
}

// WithMetrics records request, feedback, retrieval and error metrics.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(o *serviceOptions) { o.metrics = m }
}

// WithThreshold sets the minimum context confidence.
func WithThreshold(threshold float64) ServiceOption {
	return func(o *serviceOptions) { o.threshold = threshold }
}

// WithRetrievalK sets the number of documents retrieved per query.
func WithRetrievalK(k int) ServiceOption {
	return func(o *serviceOptions) { o.k = k }
}

// WithWeights sets the dense and sparse fusion weights.
func WithWeights(dense, sparse float64) ServiceOption {
	return func(o *serviceOptions) {
		o.denseWeight = dense
		o.sparseWeight = sparse
	}
}

// WithEmbedRate limits query embeddings to rate per second. Zero disables
// the limit.
func WithEmbedRate(rate float64, burst int) ServiceOption {
	return func(o *serviceOptions) {
		o.embedRate = rate
		o.embedBurst = burst
	}
}

// WithServiceLogger overrides the database logger for one service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) { o.logger = logger }
}
