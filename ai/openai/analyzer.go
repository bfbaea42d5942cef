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


package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/poiesic/praxis/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const maxParseAttempts = 3

// ContextAnalyzer implements ai.ContextAnalyzer using OpenAI-compatible chat APIs.
type ContextAnalyzer struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// assessment is the wire shape of the model answer. ConfidenceScore is a
// pointer so a missing score is told apart from a zero score.
type assessment struct {
	CorrectedText      string   `json:"corrected_text"`
	ContextSufficient  bool     `json:"context_sufficient"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	ClarifyingQuestion *string  `json:"clarifying_question"`
	Reasoning          string   `json:"reasoning"`
}

var errMissingConfidence = errors.New("confidence_score is missing")

// newContextAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newContextAnalyzer(config *ai.Config) (*ContextAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return newContextAnalyzerWithModel(client, config.AnalysisTemperature), nil
}

func newContextAnalyzerWithModel(client llms.Model, temperature float64) *ContextAnalyzer {
	return &ContextAnalyzer{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "openai-context-analyzer"),
	}
}

// NewContextAnalyzer creates a new context analyzer using the provided configuration.
//
// Returns ai.ContextAnalyzer interface to enforce abstraction.
func NewContextAnalyzer(config *ai.Config) (ai.ContextAnalyzer, error) {
	return newContextAnalyzer(config)
}

// AssessContext asks the model to correct text and rate its sufficiency.
// Malformed answers are retried up to three times.
func (a *ContextAnalyzer) AssessContext(ctx context.Context, text string) (*ai.ContextAssessment, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, contextAnalysisPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(a.temperature), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			lastErr = ai.ErrEmptyResponse
			a.logger.Warn("no choices returned from model", "attempt", attempt+1)
			continue
		}

		result, err := parseAssessment(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			a.logger.Warn("error parsing context analysis",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		a.logger.Debug("context assessed",
			"confidence", result.ConfidenceScore,
			"sufficient", result.ContextSufficient)
		return result, nil
	}

	a.logger.Error("failed to parse context analysis after retries", "err", lastErr)
	return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, lastErr)
}

// parseAssessment decodes a model answer, tolerating code fences and
// unquoted keys. The confidence score is clamped to [0, 1].
func parseAssessment(raw string) (*ai.ContextAssessment, error) {
	text := repairJSON(stripCodeFence(raw))

	var decoded assessment
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, err
	}
	if decoded.ConfidenceScore == nil {
		return nil, errMissingConfidence
	}

	result := &ai.ContextAssessment{
		CorrectedText:     decoded.CorrectedText,
		ContextSufficient: decoded.ContextSufficient,
		ConfidenceScore:   min(max(*decoded.ConfidenceScore, 0), 1),
		Reasoning:         decoded.Reasoning,
	}
	if decoded.ClarifyingQuestion != nil {
		result.ClarifyingQuestion = *decoded.ClarifyingQuestion
	}
	return result, nil
}
