package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func init() {
	color.NoColor = true
}

func testApp(t *testing.T) (*cli.App, *bytes.Buffer) {
	t.Helper()
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}
	return app, out
}

func findFlag[T cli.Flag](cmd *cli.Command, name string) (T, bool) {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok {
			for _, n := range flag.Names() {
				if n == name {
					return f, true
				}
			}
		}
	}
	var zero T
	return zero, false
}

func command(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	cmd := app.Command(name)
	require.NotNil(t, cmd, "command %s", name)
	return cmd
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		name    string
		level   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "upper case", level: "WARN", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "invalid", level: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &cli.App{
				Flags: []cli.Flag{&cli.StringFlag{Name: "log-level", Value: "info"}},
				Action: func(c *cli.Context) error {
					return setupLogger(c)
				},
			}
			err := app.Run([]string{"praxis", "--log-level", tt.level})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
				return
			}
			require.NoError(t, err)
			handler := slog.Default().Handler()
			assert.True(t, handler.Enabled(t.Context(), tt.want))
			if tt.want > slog.LevelDebug {
				assert.False(t, handler.Enabled(t.Context(), tt.want-4))
			}
		})
	}
}

func TestReembedCommandFlags(t *testing.T) {
	app, _ := testApp(t)
	cmd := command(t, app, "reembed")

	t.Run("target defaults to practices", func(t *testing.T) {
		f, ok := findFlag[*cli.StringFlag](cmd, "target")
		require.True(t, ok)
		assert.Equal(t, targetPractices, f.Value)
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		f, ok := findFlag[*cli.IntFlag](cmd, "batch-size")
		require.True(t, ok)
		assert.Equal(t, 100, f.Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		f, ok := findFlag[*cli.IntFlag](cmd, "max-retries")
		require.True(t, ok)
		assert.Equal(t, 3, f.Value)
	})

	t.Run("flags have no EnvVars", func(t *testing.T) {
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok {
				assert.Empty(t, f.EnvVars, f.Name)
			}
		}
	})
}

func TestReembedCommandValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown target", args: []string{"--target", "users"}, want: "invalid target"},
		{name: "zero batch size", args: []string{"--batch-size", "0"}, want: "batch-size must be greater than 0"},
		{name: "zero report interval", args: []string{"--report-interval", "0"}, want: "report-interval must be greater than 0"},
		{name: "zero max retries", args: []string{"--max-retries", "0"}, want: "max-retries must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := testApp(t)
			db := filepath.Join(dir, tt.name)
			args := append([]string{"praxis", "--db", db, "reembed"}, tt.args...)
			err := app.Run(args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			// validation fails before the database is created
			_, statErr := os.Stat(db)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestReembedEmptyCatalog(t *testing.T) {
	app, _ := testApp(t)
	db := filepath.Join(t.TempDir(), "db")

	err := app.Run([]string{"praxis", "--db", db, "reembed", "--target", targetDocuments})
	require.NoError(t, err)
}

func TestRecommendRequiresInput(t *testing.T) {
	t.Run("no description", func(t *testing.T) {
		app, _ := testApp(t)
		err := app.Run([]string{"praxis", "recommend"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description or --questionnaire")
	})

	t.Run("description and questionnaire", func(t *testing.T) {
		app, _ := testApp(t)
		err := app.Run([]string{"praxis", "recommend", "--questionnaire", "q.json", "stressé"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not both")
	})
}

func TestReadQuestionnaire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"main_concern": ["stress_anxiety"], "pain_location": "back"}`), 0o600))

	q, err := readQuestionnaire(path)
	require.NoError(t, err)
	assert.Equal(t, "préoccupation principale est stress anxiety. localisation de la douleur est back.", q.Text())

	_, err = readQuestionnaire(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestFeedbackCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	t.Run("stores a rating", func(t *testing.T) {
		app, out := testApp(t)
		err := app.Run([]string{"praxis", "--db", db, "feedback", "--practice", "Méditation", "--rating", "4"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Méditation (4/5)")
	})

	t.Run("rejects an out of range rating", func(t *testing.T) {
		app, _ := testApp(t)
		err := app.Run([]string{"praxis", "--db", db, "feedback", "--practice", "Méditation", "--rating", "9"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidRating))
	})

	t.Run("requires a practice", func(t *testing.T) {
		app, _ := testApp(t)
		err := app.Run([]string{"praxis", "--db", db, "feedback", "--rating", "4"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "practice")
	})
}

func TestFeedbackCommand_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "praxis.prom")

	app, _ := testApp(t)
	err := app.Run([]string{"praxis", "--db", filepath.Join(dir, "db"), "--metrics-file", metricsPath,
		"feedback", "--practice", "Yoga", "--rating", "5"})
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `feedback_rating_total{rating="5"} 1`)
	assert.Contains(t, string(data), "# TYPE recommendation_latency_seconds histogram")
}

func TestMetricsSink_NoPath(t *testing.T) {
	app := &cli.App{
		Flags: []cli.Flag{&cli.StringFlag{Name: "metrics-file"}},
		Action: func(c *cli.Context) error {
			sink, err := newMetricsSink(c)
			require.NoError(t, err)
			assert.Nil(t, sink.metrics)
			return sink.flush()
		},
	}
	require.NoError(t, app.Run([]string{"praxis"}))
}

func TestPrintOutcome(t *testing.T) {
	t.Run("recommendations with breakdown", func(t *testing.T) {
		recorder := recommend.NewRecorder()
		recorder.Scored(&core.Practice{Name: "Yoga"}, recommend.Breakdown{
			Similarity: 1, ExactMatches: 2, FuzzyMatches: 1, Raw: 1.3, UrgencyFactor: 1.5, FeedbackWeight: 1, Score: 1.95,
		})
		outcome := &praxis.Outcome{
			SessionID: "s-1",
			Status:    praxis.StatusRecommended,
			Recommendations: []*core.ScoredPractice{
				{PracticeName: "Yoga", Score: 1.95, MatchedSymptoms: []string{"stress", "dos"}},
				{PracticeName: "Méditation", Score: 1.2},
			},
			Advice:  "Essayez le yoga doux.",
			Sources: []string{"guide.md"},
		}

		var buf bytes.Buffer
		printOutcome(&buf, outcome, recorder)
		text := buf.String()
		assert.Contains(t, text, "1. Yoga  score 1.950  [stress, dos]")
		assert.Contains(t, text, "2. Méditation  score 1.200")
		assert.Contains(t, text, "similarity 1.000, matches 2+1, raw 1.300, urgency x1.50, feedback x1.00")
		assert.Contains(t, text, "Essayez le yoga doux.")
		assert.Contains(t, text, "- guide.md")
	})

	t.Run("emergency prints only the message", func(t *testing.T) {
		outcome := &praxis.Outcome{
			SessionID: "s-2",
			Status:    praxis.StatusEmergency,
			Message:   "Appelez le 15.",
		}
		var buf bytes.Buffer
		printOutcome(&buf, outcome, nil)
		assert.Contains(t, buf.String(), "Appelez le 15.")
		assert.NotContains(t, buf.String(), "Recommandations")
	})

	t.Run("insufficient prints the question", func(t *testing.T) {
		outcome := &praxis.Outcome{
			Status:             praxis.StatusInsufficient,
			Message:            praxis.InsufficientMessage,
			ClarifyingQuestion: "Depuis quand ?",
		}
		var buf bytes.Buffer
		printOutcome(&buf, outcome, nil)
		assert.Contains(t, buf.String(), "Depuis quand ?")
	})
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b c", snippet("a\n b\t c", 10))
	assert.Equal(t, "éééé…", snippet("éééééé", 4))
}
