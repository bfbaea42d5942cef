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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/praxis/advice"
	"github.com/poiesic/praxis/analysis"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/intake"
	"github.com/poiesic/praxis/metrics"
	"github.com/poiesic/praxis/recommend"
	"github.com/poiesic/praxis/storage"
)

// Status is the kind of answer a Service gives.
type Status string

const (
	StatusRecommended  Status = "recommended"
	StatusNoMatch      Status = "no_match"
	StatusEmergency    Status = "emergency"
	StatusInsufficient Status = "insufficient"
)

const (
	// NoMatchMessage is returned when no practice scores above zero.
	NoMatchMessage = "D'après les informations que vous m'avez données, je ne trouve pas de correspondance parfaite dans ma base de connaissances actuelle."

	// InsufficientMessage is returned when the input lacks detail.
	InsufficientMessage = "Le contexte fourni est insuffisant pour générer une recommandation fiable, veuillez fournir plus de détails sur vos symptômes, vous pouvez également répondre à un questionnaire pour obtenir une recommandation plus précise."
)

// Outcome is the answer to one recommendation request.
type Outcome struct {
	SessionID string `json:"session_id"`
	Status    Status `json:"status"`

	// Message is the user-facing notice for every status but
	// StatusRecommended.
	Message            string `json:"message,omitempty"`
	ClarifyingQuestion string `json:"clarifying_question,omitempty"`

	// Screening is nil for questionnaires.
	Screening *intake.Result `json:"screening,omitempty"`
	Analysis  *core.Analysis `json:"analysis,omitempty"`

	Recommendations []*core.ScoredPractice `json:"recommendations,omitempty"`
	// Practice is the full record of the top recommendation.
	Practice *core.Practice `json:"practice,omitempty"`

	// Advice is empty when fewer than two practices were recommended, and
	// advice.ApologyMessage when writing failed.
	Advice  string   `json:"advice,omitempty"`
	Sources []string `json:"sources,omitempty"`
}

// Top returns the best recommendation, or nil.
func (o *Outcome) Top() *core.ScoredPractice {
	if len(o.Recommendations) == 0 {
		return nil
	}
	return o.Recommendations[0]
}

// Service runs recommendation requests. It is safe for concurrent use.
type Service struct {
	validator   *intake.Validator
	analyzer    *analysis.Analyzer
	recommender *recommend.Recommender
	advisor     *advice.Advisor
	practices   storage.PracticeRepository
	feedback    storage.FeedbackRepository
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewService builds a service on the database. The keyword index covers
// the documents stored when NewService is called.
func (db *Database) NewService(ctx context.Context, opts ...ServiceOption) (*Service, error) {
	o := newServiceOptions(opts)
	logger := o.loggerOr(db.logger)

	validator, err := intake.NewValidator(db.provider.ContextAnalyzer(),
		intake.WithThreshold(o.threshold),
		intake.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	analyzer, err := analysis.NewAnalyzer(db.provider.Embedder(), analysis.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	monitor := o.monitor
	if o.metrics != nil {
		monitor = recommend.Monitors(o.monitor, o.metrics.Ranking())
	}
	recOpts := []recommend.Option{
		recommend.WithTopN(o.topN),
		recommend.WithMonitor(monitor),
		recommend.WithLogger(logger),
	}
	if o.cacheTTL > 0 {
		recOpts = append(recOpts, recommend.WithCatalogCache(o.cacheTTL))
	}
	recommender, err := recommend.NewRecommender(db.repos.Practices, db.repos.Feedback, recOpts...)
	if err != nil {
		return nil, err
	}

	retriever, err := db.newRetriever(ctx, o)
	if err != nil {
		return nil, err
	}
	advisor, err := advice.NewAdvisor(retriever, db.provider.AdviceWriter(),
		advice.WithK(o.k),
		advice.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		validator:   validator,
		analyzer:    analyzer,
		recommender: recommender,
		advisor:     advisor,
		practices:   db.repos.Practices,
		feedback:    db.repos.Feedback,
		metrics:     o.metrics,
		logger:      logger.With("component", "service"),
	}, nil
}

// RecommendFromText screens and analyzes free text, then recommends.
// An empty sessionID gets a random one.
func (s *Service) RecommendFromText(ctx context.Context, sessionID, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	defer s.metrics.ObserveSince(time.Now())
	outcome := &Outcome{SessionID: ensureSession(sessionID)}
	logger := s.logger.With("session", outcome.SessionID)

	screening, err := s.validator.Validate(ctx, text)
	if err != nil {
		s.metrics.CountError(metrics.ErrorScreening)
		return nil, fmt.Errorf("screening input: %w", err)
	}
	outcome.Screening = screening

	switch screening.Status {
	case intake.StatusEmergency:
		logger.Warn("emergency detected", "flag", screening.RedFlag)
		outcome.Status = StatusEmergency
		outcome.Message = screening.Message
		return outcome, nil
	case intake.StatusInsufficient:
		logger.Info("insufficient context", "confidence", screening.Confidence)
		outcome.Status = StatusInsufficient
		outcome.Message = InsufficientMessage
		outcome.ClarifyingQuestion = screening.ClarifyingQuestion
		return outcome, nil
	}

	result, err := s.analyzer.AnalyzeText(ctx, screening.Text)
	if err != nil {
		s.metrics.CountError(metrics.ErrorAnalysis)
		return nil, err
	}
	return s.recommend(ctx, logger, metrics.InputFreeText, outcome, result)
}

// RecommendFromQuestionnaire analyzes questionnaire answers, then
// recommends. Questionnaires are not screened.
func (s *Service) RecommendFromQuestionnaire(ctx context.Context, sessionID string, q *analysis.Questionnaire) (*Outcome, error) {
	if q == nil {
		return nil, ErrEmptyInput
	}
	defer s.metrics.ObserveSince(time.Now())
	outcome := &Outcome{SessionID: ensureSession(sessionID)}
	logger := s.logger.With("session", outcome.SessionID)

	result, err := s.analyzer.AnalyzeQuestionnaire(ctx, q)
	if err != nil {
		s.metrics.CountError(metrics.ErrorAnalysis)
		return nil, err
	}
	return s.recommend(ctx, logger, metrics.InputQuestionnaire, outcome, result)
}

func (s *Service) recommend(ctx context.Context, logger *slog.Logger, inputType string, outcome *Outcome, result *core.Analysis) (*Outcome, error) {
	if len(result.Embedding) == 0 {
		s.metrics.CountError(metrics.ErrorAnalysis)
		logger.Error("analysis failed", "text_len", len(result.Text))
		return nil, ErrAnalysisFailed
	}
	outcome.Analysis = result

	ranked, err := s.recommender.Recommend(ctx, result)
	if err != nil {
		s.metrics.CountError(metrics.ErrorRecommendation)
		return nil, err
	}
	s.metrics.CountRequest(inputType, len(ranked) > 0)
	if len(ranked) == 0 {
		logger.Warn("no recommendation found")
		outcome.Status = StatusNoMatch
		outcome.Message = NoMatchMessage
		return outcome, nil
	}
	outcome.Status = StatusRecommended
	outcome.Recommendations = ranked

	top := ranked[0]
	practice, err := s.practices.GetPractice(ctx, top.PracticeId)
	if err != nil {
		s.metrics.CountError(metrics.ErrorRecommendation)
		return nil, fmt.Errorf("loading practice %q: %w", top.PracticeName, err)
	}
	outcome.Practice = practice
	logger.Info("recommendation ready", "count", len(ranked), "top", top.PracticeName, "score", top.Score)

	if len(ranked) < 2 {
		logger.Debug("single recommendation, no advice written")
		return outcome, nil
	}

	names := []string{ranked[0].PracticeName, ranked[1].PracticeName}
	written, err := s.advisor.Generate(ctx, needs(result), names)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.metrics.CountError(metrics.ErrorAdvice)
		logger.Error("advice generation failed", "err", err)
		outcome.Advice = advice.ApologyMessage
		return outcome, nil
	}
	outcome.Advice = written.Text
	outcome.Sources = written.Sources()
	return outcome, nil
}

// SubmitFeedback validates and stores a rating. CreatedAt is set to the
// current UTC time.
func (s *Service) SubmitFeedback(ctx context.Context, fb *core.Feedback) (*core.Feedback, error) {
	if fb == nil {
		return nil, ErrFeedbackRequired
	}
	fb.CreatedAt = time.Now().UTC()
	if err := core.ValidateFeedback(fb); err != nil {
		return nil, err
	}
	stored, err := s.feedback.AddFeedback(ctx, fb)
	if err != nil {
		s.metrics.CountError(metrics.ErrorFeedback)
		return nil, fmt.Errorf("storing feedback: %w", err)
	}
	s.metrics.CountFeedback(fb.Rating)
	s.logger.Info("feedback stored", "practice", fb.PracticeName, "rating", fb.Rating)
	return stored[0], nil
}

// needs describes the user's needs for the advice writer: the detected
// symptom keywords, or the analyzed text when none were found.
func needs(a *core.Analysis) string {
	if keywords := a.SymptomKeywords(); len(keywords) > 0 {
		return strings.Join(keywords, ", ")
	}
	return a.Text
}

func ensureSession(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
