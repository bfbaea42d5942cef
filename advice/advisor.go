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


// Package advice writes a personalised recommendation for the two best
// practices of a ranking, grounded on documents retrieved for each.
package advice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/retrieval"
	"golang.org/x/sync/errgroup"
)

const (
	// ApologyMessage replaces the advice when it could not be generated.
	ApologyMessage = "Désolé, une erreur est survenue lors de la génération de la recommandation finale."

	// maxSources is the number of sources listed per practice.
	maxSources = 3

	contextSeparator = "\n\n---\n\n"
)

// PracticeContext is the knowledge retrieved for one practice.
type PracticeContext struct {
	Practice  string
	Query     string
	Documents []*core.SearchResult
}

// Text returns the document contents separated by blank lines.
func (p *PracticeContext) Text() string {
	contents := make([]string, 0, len(p.Documents))
	for _, r := range p.Documents {
		contents = append(contents, r.Document.Content)
	}
	return strings.Join(contents, "\n\n")
}

// Sources names the first documents: their file name when known,
// "Document sur {practice}" otherwise.
func (p *PracticeContext) Sources() []string {
	sources := make([]string, 0, min(len(p.Documents), maxSources))
	for _, r := range p.Documents[:min(len(p.Documents), maxSources)] {
		name := r.Document.Metadata["file_name"]
		if name == "" {
			name = "Document sur " + p.Practice
		}
		sources = append(sources, name)
	}
	return sources
}

// Block renders the context and sources of the practice for the prompt.
func (p *PracticeContext) Block() string {
	sources := p.Sources()
	for i, s := range sources {
		sources[i] = "- " + s
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CONTEXTE POUR %s:\n%s\n", p.Practice, p.Text())
	fmt.Fprintf(&b, "SOURCES POUR %s:\n%s", p.Practice, strings.Join(sources, "\n"))
	return b.String()
}

// Advice is a generated recommendation and the context it was written from.
type Advice struct {
	Text     string
	Contexts []*PracticeContext
}

// Sources returns the sources of every practice, in practice order.
func (a *Advice) Sources() []string {
	var sources []string
	for _, c := range a.Contexts {
		sources = append(sources, c.Sources()...)
	}
	return sources
}

// Advisor gathers knowledge for recommended practices and asks an
// ai.AdviceWriter to turn it into advice.
type Advisor struct {
	retriever retrieval.Retriever
	writer    ai.AdviceWriter
	k         int
	logger    *slog.Logger
}

// Option configures an Advisor.
type Option func(*Advisor) error

// WithK sets the number of documents retrieved per practice.
// Default is retrieval.DefaultK.
func WithK(k int) Option {
	return func(a *Advisor) error {
		if k < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidK, k)
		}
		a.k = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Advisor) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAdvisor creates an advisor.
func NewAdvisor(retriever retrieval.Retriever, writer ai.AdviceWriter, opts ...Option) (*Advisor, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if writer == nil {
		return nil, ErrAdviceWriterRequired
	}

	a := &Advisor{
		retriever: retriever,
		writer:    writer,
		k:         retrieval.DefaultK,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	a.logger = a.logger.With("component", "advisor")

	return a, nil
}

// Query returns the retrieval query for a practice.
func Query(practice, needs string) string {
	return fmt.Sprintf("Informations détaillées sur la pratique %s pour traiter %s", practice, needs)
}

// GatherContext retrieves the documents describing practice for needs.
func (a *Advisor) GatherContext(ctx context.Context, practice, needs string) (*PracticeContext, error) {
	query := Query(practice, needs)
	results, err := a.retriever.Retrieve(ctx, query, a.k)
	if err != nil {
		a.logger.Error("error retrieving practice context", "practice", practice, "err", err)
		return nil, fmt.Errorf("retrieving context for %s: %w", practice, err)
	}

	docs := make([]*core.SearchResult, 0, len(results))
	for _, r := range results {
		if r != nil && r.Document != nil {
			docs = append(docs, r)
		}
	}
	a.logger.Debug("practice context gathered", "practice", practice, "documents", len(docs))
	return &PracticeContext{Practice: practice, Query: query, Documents: docs}, nil
}

// CombineContexts renders the blocks of every context separated by rules.
func CombineContexts(contexts []*PracticeContext) string {
	blocks := make([]string, len(contexts))
	for i, c := range contexts {
		blocks[i] = c.Block()
	}
	return strings.Join(blocks, contextSeparator)
}

// Generate writes advice for the first two practices. Their contexts are
// gathered concurrently.
func (a *Advisor) Generate(ctx context.Context, needs string, practices []string) (*Advice, error) {
	if len(practices) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughPractices, len(practices))
	}
	practices = practices[:2]

	contexts := make([]*PracticeContext, len(practices))
	g, gctx := errgroup.WithContext(ctx)
	for i, practice := range practices {
		g.Go(func() error {
			c, err := a.GatherContext(gctx, practice, needs)
			if err != nil {
				return err
			}
			contexts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	text, err := a.writer.WriteAdvice(ctx, ai.AdviceRequest{
		Needs:     needs,
		Practices: practices,
		Context:   CombineContexts(contexts),
	})
	if err != nil {
		a.logger.Error("error writing advice", "err", err)
		return nil, fmt.Errorf("writing advice: %w", err)
	}

	return &Advice{Text: text, Contexts: contexts}, nil
}
