package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/praxis/ai"
)

// Config holds configuration for a reembedding run.
type Config struct {
	// BatchSize is the number of records embedded per call
	BatchSize int

	// ReportInterval is how often progress is printed, in records
	ReportInterval int

	// MaxRetries is the number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// OnlyMissing restricts the run to records without a vector
	OnlyMissing bool

	// Unit names the records in progress output
	Unit string
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: DefaultBatchSize,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

// Reembedder recomputes the vectors of every record in a store.
type Reembedder[T Record] struct {
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
	processor *BatchProcessor[T]
	iterator  *RecordIterator[T]
}

// NewReembedder creates a reembedder. A nil config means DefaultConfig and
// a nil progress writer discards progress output.
func NewReembedder[T Record](store Store[T], embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder[T], error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Reembedder[T]{
		config:    config,
		progress:  progress,
		logger:    slog.Default().With("component", "reembedder"),
		processor: NewBatchProcessor(store, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewRecordIterator(store, config.BatchSize, config.OnlyMissing),
	}, nil
}

// Run embeds every selected record and returns how many were updated.
// Batches written before a failure stay written.
func (r *Reembedder[T]) Run(ctx context.Context) (int, error) {
	records, err := r.iterator.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing records: %w", err)
	}

	unit := r.config.Unit
	if unit == "" {
		unit = "records"
	}
	total := len(records)
	if total == 0 {
		fmt.Fprintf(r.progress, "Nothing to reembed (0 %s)\n", unit)
		return 0, nil
	}
	fmt.Fprintf(r.progress, "Reembedding %d %s (batch size: %d)\n", total, unit, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, unit, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = forEachBatch(ctx, records, r.iterator.batchSize, func(batch []T) error {
		if err := r.processor.Process(ctx, batch); err != nil {
			return err
		}
		processed += len(batch)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		r.logger.Error("reembedding stopped", "processed", processed, "total", total, "err", err)
		return processed, err
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedded %d %s in %v\n", total, unit, elapsed.Round(time.Millisecond))
	r.logger.Info("reembedding complete", "count", total, "elapsed", elapsed)
	return processed, nil
}
