package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/ingestion"
	"github.com/urfave/cli/v2"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Query the knowledge base with hybrid retrieval",
		ArgsUsage: "<query...>",
		Action:    searchAction,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "k",
				Aliases: []string{"n"},
				Usage:   "Number of chunks to print (overrides settings)",
			},
			&cli.Float64Flag{
				Name:  "dense-weight",
				Usage: "Weight of the embedding retriever (overrides settings)",
				Value: -1,
			},
			&cli.Float64Flag{
				Name:  "sparse-weight",
				Usage: "Weight of the keyword retriever (overrides settings)",
				Value: -1,
			},
		},
	}
}

func searchAction(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	db, settings, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	k := settings.Retrieval.K
	if n := c.Int("k"); n > 0 {
		k = n
	}
	dense, sparse := settings.Retrieval.DenseWeight, settings.Retrieval.SparseWeight
	if v := c.Float64("dense-weight"); v >= 0 {
		dense = v
	}
	if v := c.Float64("sparse-weight"); v >= 0 {
		sparse = v
	}

	retriever, err := db.NewRetriever(ctx,
		praxis.WithSettings(settings),
		praxis.WithRetrievalK(k),
		praxis.WithWeights(dense, sparse),
	)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}
	if !retriever.HasSparse() {
		warnColor.Fprintln(c.App.Writer, "⚠ Knowledge base is empty, keyword retrieval disabled")
	}

	results, err := retriever.Retrieve(ctx, query, k)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) > k {
		results = results[:k]
	}
	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "No results")
		return nil
	}

	w := c.App.Writer
	for i, r := range results {
		headingColor.Fprintf(w, "%d. ", i+1)
		fmt.Fprintf(w, "%.4f  ", r.Score)
		dimColor.Fprintf(w, "%s #%s\n", r.Document.Metadata[ingestion.MetadataFileName], r.Document.Metadata[ingestion.MetadataChunk])
		fmt.Fprintf(w, "   %s\n", snippet(r.Document.Content, 200))
	}
	return nil
}

func snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
