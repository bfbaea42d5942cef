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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/config"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/retrieval"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// rankings captures the lists an ensemble retrieval fuses.
type rankings struct {
	mu     sync.Mutex
	dense  []*core.SearchResult
	sparse []*core.SearchResult
	failed map[string]error
}

var _ retrieval.Monitor = (*rankings)(nil)

func (r *rankings) Start(_ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dense, r.sparse = nil, nil
	r.failed = make(map[string]error)
}

func (r *rankings) AfterDense(results []*core.SearchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dense = results
}

func (r *rankings) AfterSparse(results []*core.SearchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sparse = results
}

func (r *rankings) RetrieverFailed(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[name] = err
}

func (r *rankings) Finish(_ []*core.SearchResult) {}

func printRanking(w io.Writer, title string, results []*core.SearchResult, err error) {
	fmt.Fprintf(w, "%s: %d hits\n", title, len(results))
	if err != nil {
		fmt.Fprintf(w, "  failed: %v\n", err)
		return
	}
	for i, hit := range results {
		content := strings.Join(strings.Fields(hit.Document.Content), " ")
		if runes := []rune(content); len(runes) > 70 {
			content = string(runes[:70]) + "..."
		}
		fmt.Fprintf(w, "  %d: '%s' (%d)[%0.4f]\n", i, content, hit.Document.Id, hit.Score)
	}
}

func main() {
	settings, err := config.Load("", "")
	if err != nil {
		panic(err)
	}
	db, err := praxis.OpenDatabase(settings.DatabasePath(), praxis.WithAIConfig(settings.AIConfig()))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()
	retriever, err := db.NewRetriever(ctx, praxis.WithSettings(settings))
	if err != nil {
		panic(err)
	}

	query := "gérer le stress au travail"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	monitor := &rankings{}
	fused, err := retriever.RetrieveWithMonitor(ctx, query, settings.Retrieval.K, monitor)
	if err != nil {
		panic(err)
	}

	printRanking(os.Stdout, "dense", monitor.dense, monitor.failed["dense"])
	if retriever.HasSparse() {
		printRanking(os.Stdout, "sparse", monitor.sparse, monitor.failed["sparse"])
	}
	printRanking(os.Stdout, "fused", fused, nil)
}
