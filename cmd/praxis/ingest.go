package main

import (
	"context"
	"fmt"
	"os"

	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/ingestion"
	"github.com/urfave/cli/v2"
)

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "Load text or markdown files into the knowledge base",
		ArgsUsage: "<file-or-directory>...",
		Action:    ingestAction,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Ingest sources even when their checkpoint is current",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Usage: "Maximum chunk length in characters",
				Value: ingestion.DefaultChunkSize,
			},
			&cli.IntFlag{
				Name:  "chunk-overlap",
				Usage: "Characters shared by neighbouring chunks",
				Value: ingestion.DefaultChunkOverlap,
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Chunks embedded per call",
				Value: ingestion.DefaultBatchSize,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent embedding workers (0 picks a default)",
			},
		},
	}
}

func ingestAction(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one file or directory is required")
	}
	sources, err := ingestion.LoadSources(c.Args().Slice()...)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	if len(sources) == 0 {
		warnColor.Fprintln(c.App.Writer, "⚠ No .txt or .md files found")
		return nil
	}

	db, settings, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []ingestion.Option{
		ingestion.WithForce(c.Bool("force")),
		ingestion.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")),
		ingestion.WithBatchSize(c.Int("batch-size")),
	}
	if w := c.Int("workers"); w > 0 {
		opts = append(opts, ingestion.WithPoolSize(w))
	}
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", settings.DatabasePath())
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n\n", settings.AI.EmbeddingModel)

	bar := newProgressBar(os.Stderr, len(sources), "Ingesting")
	reports := make([]*ingestion.Report, 0, len(sources))
	for _, src := range sources {
		report, err := pipeline.Ingest(ctx, src)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", src.Name, err)
		}
		reports = append(reports, report)
		_ = bar.Add(1)
	}

	printReports(c, db, reports)
	return nil
}

func printReports(c *cli.Context, db *praxis.Database, reports []*ingestion.Report) {
	w := c.App.Writer
	headingColor.Fprintln(w, "Sources")
	for _, r := range reports {
		if r.Skipped {
			dimColor.Fprintf(w, "  %s: unchanged (%d chunks)\n", r.Source, r.Chunks)
			continue
		}
		fmt.Fprintf(w, "  %s: %d chunks, %d new, %d embedded\n", r.Source, r.Chunks, r.Added, r.Embedded)
	}
	if n, err := db.DocumentRepository().CountDocuments(context.Background()); err == nil {
		successColor.Fprintf(w, "✓ Knowledge base holds %d chunks\n", n)
	}
}
