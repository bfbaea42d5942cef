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


package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/praxis/ai"
)

// Status is the outcome of screening.
type Status string

const (
	StatusOK           Status = "ok"
	StatusInsufficient Status = "insufficient"
	StatusEmergency    Status = "emergency"
	StatusUnverified   Status = "unverified"
)

const (
	// DefaultThreshold is the confidence below which a description is insufficient.
	DefaultThreshold = 0.4

	// EmergencyMessage is shown when a red flag is detected.
	EmergencyMessage = "Vos symptômes semblent nécessiter une attention médicale immédiate. Veuillez consulter un professionnel de santé sans tarder."

	// DefaultClarifyingQuestion is asked when the model gave none.
	DefaultClarifyingQuestion = "J'ai besoin de plus de contexte. Pourriez-vous m'en dire un peu plus sur ce que vous ressentez ?"

	unverifiedReasoning = "context analysis failed, proceeding with the original text"
)

// Result is the outcome of Validate.
type Result struct {
	Status Status `json:"status"`

	// Text is what downstream analysis should use: the corrected text for
	// StatusOK, the original text for StatusUnverified.
	Text string `json:"text,omitempty"`

	// Message is the user-facing notice for StatusEmergency.
	Message string `json:"message,omitempty"`

	// RedFlag is the phrase that triggered StatusEmergency.
	RedFlag string `json:"red_flag,omitempty"`

	// ClarifyingQuestion is set for StatusInsufficient.
	ClarifyingQuestion string `json:"clarifying_question,omitempty"`

	Confidence float64 `json:"confidence_score"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Proceed reports whether the input can go on to analysis.
func (r *Result) Proceed() bool {
	return r.Status == StatusOK || r.Status == StatusUnverified
}

// Validator screens user input. It is safe for concurrent use.
type Validator struct {
	analyzer  ai.ContextAnalyzer
	threshold float64
	logger    *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator) error

// WithThreshold sets the minimum confidence for a sufficient description.
// Default is DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(v *Validator) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%w: got %g", ErrInvalidThreshold, threshold)
		}
		v.threshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// NewValidator creates a validator using analyzer for context assessment.
func NewValidator(analyzer ai.ContextAnalyzer, opts ...Option) (*Validator, error) {
	if analyzer == nil {
		return nil, ErrContextAnalyzerRequired
	}

	v := &Validator{
		analyzer:  analyzer,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	v.logger = v.logger.With("component", "intake")

	return v, nil
}

// Validate screens text.
//
// Red flags are checked before the model is called. A model answer that
// cannot be decoded yields StatusUnverified; transport failures are
// returned as errors.
func (v *Validator) Validate(ctx context.Context, text string) (*Result, error) {
	if flag, ok := DetectRedFlag(text); ok {
		v.logger.Warn("red flag detected", "flag", flag)
		return &Result{
			Status:  StatusEmergency,
			Message: EmergencyMessage,
			RedFlag: flag,
		}, nil
	}

	assessment, err := v.analyzer.AssessContext(ctx, text)
	if errors.Is(err, ai.ErrMalformedResponse) {
		v.logger.Error("context analysis unusable, proceeding with original text", "err", err)
		return &Result{
			Status:    StatusUnverified,
			Text:      text,
			Reasoning: unverifiedReasoning,
		}, nil
	}
	if err != nil {
		v.logger.Error("context analysis failed", "err", err)
		return nil, fmt.Errorf("assessing context: %w", err)
	}

	result := &Result{
		Confidence: assessment.ConfidenceScore,
		Reasoning:  assessment.Reasoning,
	}

	if assessment.ConfidenceScore < v.threshold {
		result.Status = StatusInsufficient
		result.ClarifyingQuestion = strings.TrimSpace(assessment.ClarifyingQuestion)
		if result.ClarifyingQuestion == "" {
			result.ClarifyingQuestion = DefaultClarifyingQuestion
		}
		v.logger.Debug("context insufficient", "confidence", assessment.ConfidenceScore)
		return result, nil
	}

	result.Status = StatusOK
	result.Text = strings.TrimSpace(assessment.CorrectedText)
	if result.Text == "" {
		result.Text = text
	}
	return result, nil
}
