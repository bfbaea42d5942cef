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


package recommend

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/feedback"
	"github.com/poiesic/praxis/fuzzy"
	"github.com/poiesic/praxis/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTopN is the number of practices returned by default.
	DefaultTopN = 3

	semanticWeight = 0.5
	symptomWeight  = 0.5

	catalogCacheKey = "catalog"
)

// Recommender ranks practices from the catalog for a user analysis.
// It is safe for concurrent use.
type Recommender struct {
	practices storage.PracticeRepository
	feedback  storage.FeedbackRepository
	topN      int
	monitor   Monitor
	catalog   *cache.Cache
	logger    *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithTopN sets the maximum number of results.
// Default is DefaultTopN.
func WithTopN(n int) Option {
	return func(r *Recommender) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidTopN, n)
		}
		r.topN = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMonitor installs a ranking monitor.
func WithMonitor(monitor Monitor) Option {
	return func(r *Recommender) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithCatalogCache keeps the catalog in memory for ttl between calls.
// By default the catalog is read from the repository on every call.
func WithCatalogCache(ttl time.Duration) Option {
	return func(r *Recommender) error {
		if ttl <= 0 {
			return fmt.Errorf("%w: got %s", ErrInvalidCacheTTL, ttl)
		}
		r.catalog = cache.New(ttl, 2*ttl)
		return nil
	}
}

// NewRecommender creates a new recommender.
func NewRecommender(
	practices storage.PracticeRepository,
	feedback storage.FeedbackRepository,
	opts ...Option,
) (*Recommender, error) {
	if practices == nil {
		return nil, ErrPracticeRepositoryRequired
	}
	if feedback == nil {
		return nil, ErrFeedbackRepositoryRequired
	}

	r := &Recommender{
		practices: practices,
		feedback:  feedback,
		topN:      DefaultTopN,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "recommender")

	return r, nil
}

// TopN returns the configured result limit.
func (r *Recommender) TopN() int {
	return r.topN
}

// Recommend returns the best practices for analysis.
//
// An analysis without embedding yields an empty result without touching the
// stores. The catalog and the feedback history are read concurrently. A
// failed catalog read is returned as ErrCatalogUnavailable; a failed
// feedback read is logged and every practice gets the neutral weight.
func (r *Recommender) Recommend(ctx context.Context, analysis *core.Analysis) ([]*core.ScoredPractice, error) {
	if err := core.ValidateAnalysis(analysis); err != nil {
		return nil, err
	}
	if len(analysis.Embedding) == 0 {
		r.logger.Debug("analysis has no embedding, nothing to rank")
		return []*core.ScoredPractice{}, nil
	}

	var (
		catalog []*core.Practice
		stats   feedback.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = r.loadCatalog(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		records, err := r.feedback.ListFeedback(gctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.logger.Warn("feedback unavailable, using neutral weights", "err", err)
			return nil
		}
		stats = feedback.Aggregate(records)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.Rank(analysis, catalog, stats), nil
}

// InvalidateCatalog drops the cached catalog, if any.
func (r *Recommender) InvalidateCatalog() {
	if r.catalog != nil {
		r.catalog.Delete(catalogCacheKey)
	}
}

func (r *Recommender) loadCatalog(ctx context.Context) ([]*core.Practice, error) {
	if r.catalog != nil {
		if cached, ok := r.catalog.Get(catalogCacheKey); ok {
			return cached.([]*core.Practice), nil
		}
	}

	catalog, err := r.practices.ListPractices(ctx)
	if err != nil {
		return nil, err
	}
	// An empty catalog is not cached so that seeding is picked up at once.
	if r.catalog != nil && len(catalog) > 0 {
		r.catalog.SetDefault(catalogCacheKey, catalog)
	}
	return catalog, nil
}

// Rank scores every practice of catalog against analysis and returns the
// top N. It does not access any store. A nil analysis or one without
// embedding yields an empty result.
func (r *Recommender) Rank(analysis *core.Analysis, catalog []*core.Practice, stats feedback.Stats) []*core.ScoredPractice {
	results := []*core.ScoredPractice{}
	if analysis == nil || len(analysis.Embedding) == 0 {
		return results
	}

	r.monitor.Start(analysis, len(catalog))

	categories := analysis.Categories()
	lowered := make([]string, len(categories))
	for i, category := range categories {
		lowered[i] = strings.ToLower(category)
	}
	urgencyFactor := 1 + analysis.Urgency

	for _, practice := range catalog {
		if practice == nil {
			continue
		}
		similarity, err := core.CosineSimilarity(analysis.Embedding, practice.Vector)
		if err != nil {
			r.logger.Warn("skipping practice", "practice", practice.Name, "err", err)
			r.monitor.Skipped(practice, err)
			continue
		}

		exact, fuzzyCount := countSymptomMatches(lowered, practice)
		raw := similarity*semanticWeight + float64(exact+fuzzyCount)*symptomWeight
		weight := stats.WeightFor(practice.Name)
		score := raw * urgencyFactor * weight

		r.monitor.Scored(practice, Breakdown{
			Similarity:     similarity,
			ExactMatches:   exact,
			FuzzyMatches:   fuzzyCount,
			Raw:            raw,
			UrgencyFactor:  urgencyFactor,
			FeedbackWeight: weight,
			Score:          score,
		})

		if score <= 0 {
			continue
		}
		results = append(results, &core.ScoredPractice{
			PracticeId:      practice.Id,
			PracticeName:    practice.Name,
			Score:           score,
			MatchedSymptoms: slices.Clone(categories),
			FeedbackWeight:  weight,
		})
	}

	slices.SortStableFunc(results, func(a, b *core.ScoredPractice) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(results) > r.topN {
		results = results[:r.topN]
	}

	r.monitor.Finish(results)
	return results
}

// countSymptomMatches returns the exact condition matches and the fuzzy
// keyword matches of the lowercased categories. A category can count in
// both.
func countSymptomMatches(categories []string, practice *core.Practice) (exact, fuzzyCount int) {
	conditions := practice.Indications.Conditions()
	for _, category := range categories {
		if _, ok := conditions[category]; ok {
			exact++
		}
		if fuzzy.MatchesAny(category, practice.Keywords.Symptoms) {
			fuzzyCount++
		}
	}
	return exact, fuzzyCount
}
