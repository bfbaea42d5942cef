package main

import (
	"context"
	"fmt"
	"os"

	"github.com/poiesic/praxis/reembed"
	"github.com/urfave/cli/v2"
)

const (
	targetPractices = "practices"
	targetDocuments = "documents"
)

func reembedCommand() *cli.Command {
	return &cli.Command{
		Name:   "reembed",
		Usage:  "Regenerate embeddings of the catalog or the knowledge base",
		Action: reembedAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "target",
				Usage: "What to reembed (practices, documents)",
				Value: targetPractices,
			},
			&cli.BoolFlag{
				Name:  "only-missing",
				Usage: "Only embed records without a vector",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Number of records to process in each batch",
				Value: reembed.DefaultBatchSize,
			},
			&cli.IntFlag{
				Name:  "report-interval",
				Usage: "Report progress every N records",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "max-retries",
				Usage: "Maximum number of retry attempts for failed batches",
				Value: 3,
			},
			&cli.DurationFlag{
				Name:  "retry-delay",
				Usage: "Initial delay between retries (doubles each attempt)",
				Value: reembed.DefaultConfig().RetryDelay,
			},
		},
	}
}

func reembedConfigFrom(c *cli.Context) (*reembed.Config, error) {
	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		OnlyMissing:    c.Bool("only-missing"),
	}
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return nil, fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return nil, fmt.Errorf("max-retries must be greater than 0")
	}
	return config, nil
}

func reembedAction(c *cli.Context) error {
	ctx := context.Background()

	target := c.String("target")
	if target != targetPractices && target != targetDocuments {
		return fmt.Errorf("invalid target %q: must be %s or %s", target, targetPractices, targetDocuments)
	}
	config, err := reembedConfigFrom(c)
	if err != nil {
		return err
	}

	db, settings, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", settings.DatabasePath())
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", settings.AI.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", settings.AI.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	var count int
	switch target {
	case targetPractices:
		config.Unit = targetPractices
		r, err := db.NewPracticeReembedder(config, os.Stderr)
		if err != nil {
			return err
		}
		count, err = r.Run(ctx)
		if err != nil {
			return fmt.Errorf("reembedding failed after %d %s: %w", count, target, err)
		}
	case targetDocuments:
		config.Unit = targetDocuments
		r, err := db.NewDocumentReembedder(config, os.Stderr)
		if err != nil {
			return err
		}
		count, err = r.Run(ctx)
		if err != nil {
			return fmt.Errorf("reembedding failed after %d %s: %w", count, target, err)
		}
	}
	return nil
}
