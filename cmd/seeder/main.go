package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/goccy/go-json"
	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/config"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/reembed"
)

//go:embed practices.json
var defaultCatalog []byte

var (
	seedFileName = flag.String("src", "", "practice catalog in JSON (built-in catalog when empty)")
	configFile   = flag.String("config", "", "YAML settings file")
	fakeFeedback = flag.Int("fake-feedback", 0, "number of random ratings to add per practice")
	fakeSeed     = flag.Int64("seed", 1, "seed of the random ratings")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

type catalogFile struct {
	Practices []*core.Practice `json:"practices"`
}

// decodeCatalog reads a {"practices": [...]} document.
func decodeCatalog(data []byte) ([]*core.Practice, error) {
	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(catalog.Practices) == 0 {
		return nil, errors.New("no practices found in the catalog")
	}
	for _, p := range catalog.Practices {
		p.Vector = nil
	}
	return catalog.Practices, nil
}

// seedCatalog stores practices and embeds them. A catalog that already
// holds practices is left untouched and seedCatalog returns 0.
func seedCatalog(ctx context.Context, db *praxis.Database, practices []*core.Practice, progress io.Writer) (int, error) {
	repo := db.PracticeRepository()
	count, err := repo.CountPractices(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		slog.Info("catalog already seeded, skipping", "practices", count)
		return 0, nil
	}

	added, err := repo.AddPractices(ctx, practices...)
	if err != nil {
		return 0, fmt.Errorf("storing practices: %w", err)
	}

	cfg := reembed.DefaultConfig()
	cfg.OnlyMissing = true
	cfg.Unit = "practices"
	reembedder, err := db.NewPracticeReembedder(cfg, progress)
	if err != nil {
		return len(added), err
	}
	if _, err := reembedder.Run(ctx); err != nil {
		return len(added), fmt.Errorf("embedding practices: %w", err)
	}
	return len(added), nil
}

// seedFeedback adds perPractice random ratings to every practice.
func seedFeedback(ctx context.Context, db *praxis.Database, practices []*core.Practice, perPractice int, seed int64) (int, error) {
	faker := gofakeit.New(seed)
	records := make([]*core.Feedback, 0, len(practices)*perPractice)
	for _, p := range practices {
		for range perPractice {
			records = append(records, &core.Feedback{
				SessionID:    faker.UUID(),
				PracticeName: p.Name,
				Rating:       faker.Number(core.MinRating, core.MaxRating),
				Comment:      faker.Sentence(6),
				CreatedAt:    faker.DateRange(time.Now().AddDate(0, -6, 0), time.Now()).UTC(),
			})
		}
	}
	stored, err := db.FeedbackRepository().AddFeedback(ctx, records...)
	return len(stored), err
}

func main() {
	flag.Parse()
	ctx := context.Background()

	data := defaultCatalog
	if *seedFileName != "" {
		var err error
		data, err = os.ReadFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}
	practices, err := decodeCatalog(data)
	if err != nil {
		panic(err)
	}

	settings, err := config.Load(*configFile, "")
	if err != nil {
		panic(err)
	}
	db, err := praxis.OpenDatabase(settings.DatabasePath(), praxis.WithAIConfig(settings.AIConfig()))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	added, err := seedCatalog(ctx, db, practices, os.Stderr)
	if err != nil {
		panic(err)
	}
	if added > 0 {
		names := make([]string, len(practices))
		for i, p := range practices {
			names[i] = p.Name
		}
		slog.Info("catalog seeded", "practices", added, "names", strings.Join(names, ", "))
	}

	if *fakeFeedback > 0 {
		n, err := seedFeedback(ctx, db, practices, *fakeFeedback, *fakeSeed)
		if err != nil {
			panic(err)
		}
		slog.Info("random feedback added", "records", n)
	}
}
