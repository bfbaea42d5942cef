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


package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/analysis"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/recommend"
	"github.com/urfave/cli/v2"
)

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:      "recommend",
		Usage:     "Recommend practices for a symptom description",
		ArgsUsage: "[description...]",
		Action:    recommendAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "questionnaire",
				Aliases: []string{"q"},
				Usage:   "JSON file holding questionnaire answers instead of a description",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Session identifier (generated when empty)",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of practices to return (overrides settings)",
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "Print the score breakdown of each practice",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the outcome as JSON",
			},
		},
	}
}

func recommendAction(c *cli.Context) error {
	ctx := context.Background()

	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	questionnairePath := c.String("questionnaire")
	if text == "" && questionnairePath == "" {
		return fmt.Errorf("a description or --questionnaire is required")
	}
	if text != "" && questionnairePath != "" {
		return fmt.Errorf("use either a description or --questionnaire, not both")
	}

	db, settings, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	sink, err := newMetricsSink(c)
	if err != nil {
		return err
	}
	opts := []praxis.ServiceOption{praxis.WithSettings(settings), sink.option()}
	if n := c.Int("top"); n > 0 {
		opts = append(opts, praxis.WithTopN(n))
	}
	var recorder *recommend.Recorder
	if c.Bool("explain") {
		recorder = recommend.NewRecorder()
		opts = append(opts, praxis.WithMonitor(recorder))
	}

	svc, err := db.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	s := newSpinner(os.Stderr, "Analyse en cours...")
	s.Start()
	var outcome *praxis.Outcome
	if questionnairePath != "" {
		var q *analysis.Questionnaire
		q, err = readQuestionnaire(questionnairePath)
		if err == nil {
			outcome, err = svc.RecommendFromQuestionnaire(ctx, c.String("session"), q)
		}
	} else {
		outcome, err = svc.RecommendFromText(ctx, c.String("session"), text)
	}
	s.Stop()
	if flushErr := sink.flush(); flushErr != nil {
		slog.Warn("metrics not written", "err", flushErr)
	}
	if err != nil {
		if errors.Is(err, praxis.ErrAnalysisFailed) {
			return fmt.Errorf("could not analyze the input: %w", err)
		}
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}
	printOutcome(c.App.Writer, outcome, recorder)
	return nil
}

func readQuestionnaire(path string) (*analysis.Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questionnaire: %w", err)
	}
	var q analysis.Questionnaire
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decoding questionnaire %s: %w", path, err)
	}
	return &q, nil
}

func feedbackCommand() *cli.Command {
	return &cli.Command{
		Name:   "feedback",
		Usage:  "Rate a recommended practice",
		Action: feedbackAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "practice",
				Aliases:  []string{"p"},
				Usage:    "Practice name",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "rating",
				Aliases:  []string{"r"},
				Usage:    "Rating from 1 to 5",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "comment",
				Usage: "Free text comment",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Session the rating belongs to",
			},
		},
	}
}

func feedbackAction(c *cli.Context) error {
	ctx := context.Background()

	db, settings, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	sink, err := newMetricsSink(c)
	if err != nil {
		return err
	}
	svc, err := db.NewService(ctx, praxis.WithSettings(settings), sink.option())
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	stored, err := svc.SubmitFeedback(ctx, &core.Feedback{
		SessionID:    c.String("session"),
		PracticeName: c.String("practice"),
		Rating:       c.Int("rating"),
		Comment:      c.String("comment"),
	})
	if flushErr := sink.flush(); flushErr != nil {
		slog.Warn("metrics not written", "err", flushErr)
	}
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	successColor.Fprintf(c.App.Writer, "✓ Merci pour votre retour sur %s (%d/5)\n", stored.PracticeName, stored.Rating)
	return nil
}
