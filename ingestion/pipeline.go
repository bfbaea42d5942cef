package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the number of characters shared by neighbouring chunks.
	DefaultChunkOverlap = 200

	// DefaultBatchSize is the number of chunks embedded per call.
	DefaultBatchSize = 32
)

// Metadata keys set on every chunk.
const (
	MetadataSourceType = "source_type"
	MetadataFileName   = "file_name"
	MetadataChunk      = "chunk"
)

// Pipeline orchestrates the ingestion of knowledge sources.
// Embedding batches of a source run concurrently on a worker pool.
type Pipeline struct {
	documents    storage.DocumentRepository
	checkpoints  storage.CheckpointRepository
	embedding    *embeddingProcessor
	pool         *ants.Pool
	poolSize     int
	chunkSize    int
	chunkOverlap int
	batchSize    int
	force        bool
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithChunking sets the chunk size and overlap, in characters.
// Default is DefaultChunkSize and DefaultChunkOverlap.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		if size < 1 || overlap < 0 || overlap >= size {
			return fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidChunking, size, overlap)
		}
		p.chunkSize = size
		p.chunkOverlap = overlap
		return nil
	}
}

// WithBatchSize sets the number of chunks embedded per call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithForce ingests sources even when their checkpoint says they are unchanged.
func WithForce(force bool) Option {
	return func(p *Pipeline) error {
		p.force = force
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
// Release must be called when the pipeline is no longer needed.
func NewPipeline(
	documents storage.DocumentRepository,
	checkpoints storage.CheckpointRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		documents:    documents,
		checkpoints:  checkpoints,
		poolSize:     max(runtime.NumCPU()/2, 1),
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		batchSize:    DefaultBatchSize,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	p.embedding = newEmbeddingProcessor(documents, embedder, p.logger)

	return p, nil
}

// Report describes the ingestion of one source.
type Report struct {
	Source   string `json:"source"`
	Chunks   int    `json:"chunks"`
	Added    int    `json:"added"`
	Embedded int    `json:"embedded"`
	Skipped  bool   `json:"skipped"`
}

// Split cuts text into overlapping chunks.
func (p *Pipeline) Split(text string) ([]string, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(p.chunkSize),
		textsplitter.WithChunkOverlap(p.chunkOverlap),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	out := chunks[:0]
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			out = append(out, chunk)
		}
	}
	return out, nil
}

// Ingest stores and embeds the chunks of src. The checkpoint of the source
// is saved only when every chunk was embedded.
func (p *Pipeline) Ingest(ctx context.Context, src *Source) (*Report, error) {
	if src == nil || strings.TrimSpace(src.Content) == "" {
		return nil, ErrEmptySource
	}
	report := &Report{Source: src.Name}
	hash := core.IDFromContent(src.Content)

	if !p.force {
		checkpoint, err := p.checkpoints.LoadCheckpoint(ctx, src.Name)
		if err != nil {
			return nil, fmt.Errorf("loading checkpoint: %w", err)
		}
		if checkpoint != nil && checkpoint.ContentHash == hash {
			p.logger.Info("source unchanged, skipping", "source", src.Name)
			report.Chunks = checkpoint.Chunks
			report.Skipped = true
			return report, nil
		}
	}

	chunks, err := p.Split(src.Content)
	if err != nil {
		return nil, fmt.Errorf("splitting %s: %w", src.Name, err)
	}
	report.Chunks = len(chunks)

	docs := make([]*core.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = &core.Document{
			Content: chunk,
			Metadata: map[string]string{
				MetadataSourceType: src.Type,
				MetadataFileName:   src.Name,
				MetadataChunk:      strconv.Itoa(i),
			},
		}
	}

	added, err := p.documents.AddDocuments(ctx, docs...)
	if err != nil {
		return nil, fmt.Errorf("storing chunks of %s: %w", src.Name, err)
	}
	report.Added = len(added)

	pending, err := p.unembedded(ctx, docs)
	if err != nil {
		return nil, err
	}

	embedded, err := p.embed(ctx, pending)
	report.Embedded = embedded
	if err != nil {
		return report, err
	}

	err = p.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Source:      src.Name,
		ContentHash: hash,
		Chunks:      len(chunks),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return report, fmt.Errorf("saving checkpoint: %w", err)
	}

	p.logger.Info("source ingested",
		"source", src.Name,
		"chunks", report.Chunks,
		"added", report.Added,
		"embedded", report.Embedded)
	return report, nil
}

// IngestAll ingests sources one after the other and stops at the first error.
func (p *Pipeline) IngestAll(ctx context.Context, sources ...*Source) ([]*Report, error) {
	reports := make([]*Report, 0, len(sources))
	for _, src := range sources {
		report, err := p.Ingest(ctx, src)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// unembedded returns the stored version of every chunk still lacking a
// vector. Chunks repeated within a source are returned once.
func (p *Pipeline) unembedded(ctx context.Context, docs []*core.Document) ([]*core.Document, error) {
	seen := make(map[core.ID]struct{}, len(docs))
	var pending []*core.Document
	for _, doc := range docs {
		if _, ok := seen[doc.Id]; ok {
			continue
		}
		seen[doc.Id] = struct{}{}

		stored, err := p.documents.GetDocument(ctx, doc.Id)
		if err != nil {
			return nil, fmt.Errorf("reading chunk %d: %w", doc.Id, err)
		}
		if !stored.Embedded() {
			pending = append(pending, stored)
		}
	}
	return pending, nil
}

// embed submits docs to the pool in batches and waits for every batch.
// It returns the number of documents embedded.
func (p *Pipeline) embed(ctx context.Context, docs []*core.Document) (int, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     []error
		embedded int
	)

	for start := 0; start < len(docs); start += p.batchSize {
		batch := docs[start:min(start+p.batchSize, len(docs))]
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			err := p.embedding.process(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			embedded += len(batch)
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		p.logger.Error("error processing embeddings", "failed_batches", len(errs), "err", errors.Join(errs...))
		return embedded, fmt.Errorf("embedding chunks: %w", errors.Join(errs...))
	}
	return embedded, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
