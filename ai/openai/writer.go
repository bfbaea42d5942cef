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
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/praxis/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AdviceWriter implements ai.AdviceWriter using OpenAI-compatible chat APIs.
type AdviceWriter struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// newAdviceWriter is an internal constructor that returns the concrete type.
func newAdviceWriter(config *ai.Config) (*AdviceWriter, error) {
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

	return newAdviceWriterWithModel(client, config.AdviceTemperature), nil
}

func newAdviceWriterWithModel(client llms.Model, temperature float64) *AdviceWriter {
	return &AdviceWriter{
		client:      client,
		temperature: temperature,
		logger:      slog.Default().With("component", "openai-advice-writer"),
	}
}

// NewAdviceWriter creates a new advice writer using the provided configuration.
//
// Returns ai.AdviceWriter interface to enforce abstraction.
func NewAdviceWriter(config *ai.Config) (ai.AdviceWriter, error) {
	return newAdviceWriter(config)
}

// WriteAdvice renders the advice prompt for the first two practices of req
// and returns the model's markdown answer.
func (w *AdviceWriter) WriteAdvice(ctx context.Context, req ai.AdviceRequest) (string, error) {
	if len(req.Practices) < 2 {
		return "", fmt.Errorf("advice needs two practices, got %d", len(req.Practices))
	}

	prompt := buildAdvicePrompt(req.Needs, req.Practices, req.Context)
	w.logger.Debug("writing advice", "practices", req.Practices[:2], "prompt_length", len(prompt))

	answer, err := llms.GenerateFromSinglePrompt(ctx, w.client, prompt, llms.WithTemperature(w.temperature))
	if err != nil {
		w.logger.Error("failed to generate advice", "err", err)
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ai.ErrEmptyResponse
	}
	return answer, nil
}
