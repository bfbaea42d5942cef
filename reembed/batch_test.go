package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/praxis/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessor_NormalizesAndStores(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	practices := seedPractices(t, repos, 2)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = unnormalized
	processor := NewBatchProcessor(PracticeStore(repos.Practices), embedder, 3, time.Millisecond)

	require.NoError(t, processor.Process(ctx, practices))

	for _, p := range practices {
		stored, err := repos.Practices.GetPractice(ctx, p.Id)
		require.NoError(t, err)
		require.Len(t, stored.Vector, 3)
		assert.InDelta(t, 1.0/3, stored.Vector[0], 1e-6)
		assert.InDelta(t, 2.0/3, stored.Vector[1], 1e-6)
		assert.InDelta(t, 2.0/3, stored.Vector[2], 1e-6)
	}
}

func TestBatchProcessor_EmbedsDocumentContent(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	docs := seedDocuments(t, repos, "la respiration profonde", "le yoga doux")

	var seen []string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		seen = append(seen, texts...)
		return unnormalized(ctx, texts)
	}
	processor := NewBatchProcessor(DocumentStore(repos.Documents), embedder, 1, time.Millisecond)

	require.NoError(t, processor.Process(ctx, docs))
	assert.ElementsMatch(t, []string{"la respiration profonde", "le yoga doux"}, seen)

	for _, d := range docs {
		stored, err := repos.Documents.GetDocument(ctx, d.Id)
		require.NoError(t, err)
		assert.True(t, stored.Embedded())
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repos := setupRepos(t)
	embedder := mock.NewMockEmbedder()
	processor := NewBatchProcessor(PracticeStore(repos.Practices), embedder, 3, time.Millisecond)

	require.NoError(t, processor.Process(context.Background(), nil))
	assert.Equal(t, 0, embedder.CallCount())
}

func TestBatchProcessor_RetriesTransientFailures(t *testing.T) {
	repos := setupRepos(t)
	practices := seedPractices(t, repos, 1)

	attempts := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("temporary")
		}
		return unnormalized(ctx, texts)
	}
	processor := NewBatchProcessor(PracticeStore(repos.Practices), embedder, 3, time.Millisecond)

	require.NoError(t, processor.Process(context.Background(), practices))
	assert.Equal(t, 3, attempts)
}

func TestBatchProcessor_GivesUp(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	practices := seedPractices(t, repos, 1)

	failure := errors.New("model offline")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, failure
	}
	processor := NewBatchProcessor(PracticeStore(repos.Practices), embedder, 2, time.Millisecond)

	err := processor.Process(ctx, practices)
	require.ErrorIs(t, err, failure)
	assert.Equal(t, 2, embedder.CallCount())

	stored, err := repos.Practices.GetPractice(ctx, practices[0].Id)
	require.NoError(t, err)
	assert.False(t, stored.Embedded(), "nothing is written on failure")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repos := setupRepos(t)
	practices := seedPractices(t, repos, 2)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}
	processor := NewBatchProcessor(PracticeStore(repos.Practices), embedder, 1, time.Millisecond)

	err := processor.Process(context.Background(), practices)
	assert.ErrorIs(t, err, ErrEmbeddingMismatch)
}
