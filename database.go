package praxis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/praxis/ai"
	"github.com/poiesic/praxis/ai/openai"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/ingestion"
	"github.com/poiesic/praxis/reembed"
	"github.com/poiesic/praxis/retrieval"
	"github.com/poiesic/praxis/storage"
	"github.com/poiesic/praxis/storage/badger"
	"golang.org/x/time/rate"
)

// Database owns the storage backend and the AI provider.
type Database struct {
	repos         *badger.Repositories
	provider      ai.AIProvider
	closeProvider bool
	logger        *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses an existing provider instead of creating one. The
// caller keeps ownership: Close does not close it.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all data in memory. The path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// OpenDatabase opens the database at filePath, creating it if needed.
func OpenDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	repos, err := badger.OpenRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, closeProvider := options.provider, false
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
		closeProvider = true
	}

	return &Database{
		repos:         repos,
		provider:      provider,
		closeProvider: closeProvider,
		logger:        options.logger,
	}, nil
}

// Close closes the provider it created, then the repositories and backend.
func (db *Database) Close() error {
	var errs []error
	if db.closeProvider {
		if err := db.provider.Close(); err != nil {
			db.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PracticeRepository returns the practice catalog.
func (db *Database) PracticeRepository() storage.PracticeRepository {
	return db.repos.Practices
}

// FeedbackRepository returns the feedback log.
func (db *Database) FeedbackRepository() storage.FeedbackRepository {
	return db.repos.Feedback
}

// DocumentRepository returns the knowledge base.
func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.repos.Documents
}

// CheckpointRepository returns the ingestion checkpoints.
func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.repos.Checkpoints
}

// Provider returns the AI provider.
func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// NewIngestionPipeline creates a knowledge base ingestion pipeline.
// Call Release on the pipeline when done.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(db.logger)}, opts...)
	return ingestion.NewPipeline(db.repos.Documents, db.repos.Checkpoints, db.provider.Embedder(), opts...)
}

// NewPracticeReembedder creates a reembedder over the catalog.
func (db *Database) NewPracticeReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder[*core.Practice], error) {
	return reembed.NewReembedder(reembed.PracticeStore(db.repos.Practices), db.provider.Embedder(), config, progress)
}

// NewDocumentReembedder creates a reembedder over the knowledge base.
func (db *Database) NewDocumentReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder[*core.Document], error) {
	return reembed.NewReembedder(reembed.DocumentStore(db.repos.Documents), db.provider.Embedder(), config, progress)
}

// NewRetriever builds the ensemble retriever over the knowledge base. The
// sparse index is a snapshot of the documents stored now; with an empty
// knowledge base the ensemble is dense only.
func (db *Database) NewRetriever(ctx context.Context, opts ...ServiceOption) (*retrieval.Ensemble, error) {
	o := newServiceOptions(opts)
	return db.newRetriever(ctx, o)
}

func (db *Database) newRetriever(ctx context.Context, o *serviceOptions) (*retrieval.Ensemble, error) {
	logger := o.loggerOr(db.logger)

	denseOpts := []retrieval.DenseOption{retrieval.WithDenseLogger(logger)}
	if o.embedRate > 0 {
		denseOpts = append(denseOpts, retrieval.WithRateLimit(rate.Limit(o.embedRate), o.embedBurst))
	}
	dense, err := retrieval.NewDenseRetriever(db.provider.Embedder(), db.repos.Documents, denseOpts...)
	if err != nil {
		return nil, err
	}

	sparse, err := retrieval.NewSparseRetrieverFromRepository(ctx, db.repos.Documents, retrieval.WithSparseLogger(logger))
	switch {
	case errors.Is(err, retrieval.ErrEmptyCorpus):
		logger.Info("knowledge base is empty, keyword retrieval disabled")
		sparse = nil
	case err != nil:
		return nil, fmt.Errorf("building keyword index: %w", err)
	}

	ensembleOpts := []retrieval.Option{
		retrieval.WithWeights(o.denseWeight, o.sparseWeight),
		retrieval.WithK(o.k),
		retrieval.WithLogger(logger),
	}
	if o.metrics != nil {
		ensembleOpts = append(ensembleOpts, retrieval.WithMonitor(o.metrics.Retrieval()))
	}
	return retrieval.NewEnsemble(dense, sparse, ensembleOpts...)
}
