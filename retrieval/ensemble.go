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


package retrieval

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/praxis/core"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultK is the number of results asked from each retriever.
	DefaultK = 5

	// DefaultWeight is the default weight of each retriever.
	DefaultWeight = 0.5

	// rrfConstant damps the influence of top ranks in reciprocal rank fusion.
	rrfConstant = 60
)

// Ensemble fuses a dense and an optional sparse retriever with weighted
// reciprocal rank fusion.
type Ensemble struct {
	dense        Retriever
	sparse       Retriever
	denseWeight  float64
	sparseWeight float64
	k            int
	monitor      Monitor
	logger       *slog.Logger
}

var _ Retriever = (*Ensemble)(nil)

// Option configures an Ensemble.
type Option func(*Ensemble) error

// WithWeights sets the dense and sparse weights.
// Default is DefaultWeight for both.
func WithWeights(dense, sparse float64) Option {
	return func(e *Ensemble) error {
		if dense < 0 || sparse < 0 || dense+sparse == 0 {
			return fmt.Errorf("%w: dense=%g sparse=%g", ErrInvalidWeights, dense, sparse)
		}
		e.denseWeight = dense
		e.sparseWeight = sparse
		return nil
	}
}

// WithK sets the number of results asked from each retriever when
// Retrieve is called with k <= 0.
// Default is DefaultK.
func WithK(k int) Option {
	return func(e *Ensemble) error {
		if k < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidK, k)
		}
		e.k = k
		return nil
	}
}

// WithMonitor sets the monitor used by Retrieve.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(e *Ensemble) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Ensemble) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEnsemble creates an ensemble. sparse may be nil, in which case the
// ensemble returns the dense results unchanged.
func NewEnsemble(dense Retriever, sparse Retriever, opts ...Option) (*Ensemble, error) {
	if dense == nil {
		return nil, ErrRetrieverRequired
	}
	if s, ok := sparse.(*SparseRetriever); ok && s == nil {
		sparse = nil
	}

	e := &Ensemble{
		dense:        dense,
		sparse:       sparse,
		denseWeight:  DefaultWeight,
		sparseWeight: DefaultWeight,
		k:            DefaultK,
		monitor:      &noopMonitor{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "ensemble-retriever")

	return e, nil
}

// HasSparse reports whether a sparse retriever is configured.
func (e *Ensemble) HasSparse() bool {
	return e.sparse != nil
}

// Retrieve runs both retrievers and fuses their rankings, reporting to the
// configured monitor.
func (e *Ensemble) Retrieve(ctx context.Context, query string, k int) ([]*core.SearchResult, error) {
	return e.RetrieveWithMonitor(ctx, query, k, e.monitor)
}

// RetrieveWithMonitor runs both retrievers concurrently, asking each for k
// results (the configured default when k <= 0), and returns every fused
// document by fused score.
//
// A failing retriever is logged and the other's results are used. If the
// caller's context ends before both calls return, the context error is
// returned and no partial result.
func (e *Ensemble) RetrieveWithMonitor(ctx context.Context, query string, k int, monitor Monitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k <= 0 {
		k = e.k
	}

	monitor.Start(query)

	if e.sparse == nil {
		results, err := e.dense.Retrieve(ctx, query, k)
		if err != nil {
			monitor.RetrieverFailed("dense", err)
			return nil, err
		}
		monitor.AfterDense(results)
		monitor.Finish(results)
		return results, nil
	}

	var dense, sparse []*core.SearchResult
	var denseErr, sparseErr error

	var g errgroup.Group
	g.Go(func() error {
		dense, denseErr = e.dense.Retrieve(ctx, query, k)
		if denseErr == nil {
			monitor.AfterDense(dense)
		}
		return nil
	})
	g.Go(func() error {
		sparse, sparseErr = e.sparse.Retrieve(ctx, query, k)
		if sparseErr == nil {
			monitor.AfterSparse(sparse)
		}
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case denseErr != nil && sparseErr != nil:
		monitor.RetrieverFailed("dense", denseErr)
		monitor.RetrieverFailed("sparse", sparseErr)
		e.logger.Error("every retriever failed", "query", query, "err", errors.Join(denseErr, sparseErr))
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, errors.Join(denseErr, sparseErr))
	case denseErr != nil:
		monitor.RetrieverFailed("dense", denseErr)
		e.logger.Warn("dense retriever failed, using sparse results only", "err", denseErr)
		monitor.Finish(sparse)
		return sparse, nil
	case sparseErr != nil:
		monitor.RetrieverFailed("sparse", sparseErr)
		e.logger.Warn("sparse retriever failed, using dense results only", "err", sparseErr)
		monitor.Finish(dense)
		return dense, nil
	}

	results := Fuse([][]*core.SearchResult{dense, sparse}, []float64{e.denseWeight, e.sparseWeight})
	e.logger.Debug("fused rankings", "dense", len(dense), "sparse", len(sparse), "fused", len(results))
	monitor.Finish(results)
	return results, nil
}

// Fuse merges ranked lists with weighted reciprocal rank fusion. lists[i]
// is weighted by weights[i]; missing weights count as zero. Each document
// keeps its first occurrence and gets the sum of weight/(rank+60) over the
// lists it appears in, rank starting at 1. The result is sorted by fused
// score descending, ties in first-seen order.
func Fuse(lists [][]*core.SearchResult, weights []float64) []*core.SearchResult {
	var fused []*core.SearchResult
	index := make(map[string]int)

	for i, list := range lists {
		var weight float64
		if i < len(weights) {
			weight = weights[i]
		}
		for rank, result := range list {
			if result == nil || result.Document == nil {
				continue
			}
			contribution := weight / float64(rank+1+rrfConstant)
			key := result.Document.Key()
			if pos, ok := index[key]; ok {
				fused[pos].Score += contribution
				continue
			}
			index[key] = len(fused)
			fused = append(fused, &core.SearchResult{
				Document: result.Document,
				Score:    contribution,
			})
		}
	}

	slices.SortStableFunc(fused, func(a, b *core.SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return fused
}
