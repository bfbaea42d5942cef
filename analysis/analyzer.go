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


package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/textproc"
)

// Analyzer builds analyses from user input. It is safe for concurrent use.
type Analyzer struct {
	embedder ai.Embedder
	lexicon  Lexicon
	logger   *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithLexicon replaces the default symptom lexicon.
func WithLexicon(lexicon Lexicon) Option {
	return func(a *Analyzer) error {
		if len(lexicon) == 0 {
			return ErrEmptyLexicon
		}
		a.lexicon = lexicon
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnalyzer creates an analyzer embedding text with embedder.
func NewAnalyzer(embedder ai.Embedder, opts ...Option) (*Analyzer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	a := &Analyzer{
		embedder: embedder,
		lexicon:  DefaultLexicon(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	a.logger = a.logger.With("component", "analyzer")

	return a, nil
}

// AnalyzeText analyzes free text.
//
// Blank text yields an analysis with urgency 0 and no embedding, which the
// recommender treats as nothing to rank. The embedding is computed from the
// text as given; symptom and urgency detection work on its lowercase form.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*core.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return &core.Analysis{
			Text:     text,
			Keywords: []string{},
			Symptoms: []core.SymptomMatch{},
		}, nil
	}

	lowered := strings.ToLower(text)
	analysis := &core.Analysis{
		Text:     text,
		Keywords: textproc.Keywords(text),
		Symptoms: a.IdentifySymptoms(lowered),
		Urgency:  AssessUrgency(lowered),
	}

	embedding, err := a.embedder.EmbedText(ctx, text)
	if err != nil {
		a.logger.Error("error generating embedding for input", "err", err)
		return nil, fmt.Errorf("embedding input: %w", err)
	}
	analysis.Embedding = embedding

	a.logger.Debug("input analyzed",
		"categories", analysis.Categories(),
		"urgency", analysis.Urgency,
		"keywords", len(analysis.Keywords))
	return analysis, nil
}

// AnalyzeQuestionnaire renders q to text and analyzes it.
func (a *Analyzer) AnalyzeQuestionnaire(ctx context.Context, q *Questionnaire) (*core.Analysis, error) {
	text := q.Text()
	a.logger.Debug("questionnaire rendered", "text", text)
	return a.AnalyzeText(ctx, text)
}

// IdentifySymptoms returns the (category, keyword) pairs found in lowered
// text, in lexicon order without duplicates. A keyword is found when it is
// a substring of the text once its underscores are replaced by spaces.
func (a *Analyzer) IdentifySymptoms(lowered string) []core.SymptomMatch {
	matches := []core.SymptomMatch{}
	seen := make(map[core.SymptomMatch]struct{})
	for _, category := range a.lexicon {
		for _, keyword := range category.Keywords {
			needle := strings.ToLower(strings.ReplaceAll(keyword, "_", " "))
			if !strings.Contains(lowered, needle) {
				continue
			}
			match := core.SymptomMatch{Category: category.Name, Keyword: keyword}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			matches = append(matches, match)
		}
	}
	return matches
}
