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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/config"
	"github.com/urfave/cli/v2"
)

const settingsKey = "settings"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "praxis",
		Usage: "Wellness practice recommendations from symptom descriptions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Read PRAXIS_* variables from this file (default .env when present)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML settings file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides settings)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics of the run to this file",
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c); err != nil {
				return err
			}
			return loadSettings(c)
		},
		Commands: []*cli.Command{
			recommendCommand(),
			feedbackCommand(),
			ingestCommand(),
			searchCommand(),
			reembedCommand(),
		},
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch levelStr := strings.ToLower(c.String("log-level")); levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func loadSettings(c *cli.Context) error {
	settings, err := config.Load(c.String("config"), c.String("env-file"))
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if db := c.String("db"); db != "" {
		settings.Database.Path = db
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[settingsKey] = settings
	return nil
}

func settingsFrom(c *cli.Context) *config.Settings {
	if s, ok := c.App.Metadata[settingsKey].(*config.Settings); ok {
		return s
	}
	return config.Default()
}

func openDatabase(c *cli.Context) (*praxis.Database, *config.Settings, error) {
	settings := settingsFrom(c)
	db, err := praxis.OpenDatabase(settings.DatabasePath(),
		praxis.WithAIConfig(settings.AIConfig()),
		praxis.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, settings, nil
}
