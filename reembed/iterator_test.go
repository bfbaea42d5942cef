package reembed

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/praxis/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIterator_Batches(t *testing.T) {
	repos := setupRepos(t)
	seedPractices(t, repos, 7)

	it := NewRecordIterator(PracticeStore(repos.Practices), 3, false)
	var sizes []int
	err := it.ForEach(context.Background(), func(batch []*core.Practice) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, sizes)
}

func TestRecordIterator_DefaultBatchSize(t *testing.T) {
	repos := setupRepos(t)
	it := NewRecordIterator(PracticeStore(repos.Practices), 0, false)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}

func TestRecordIterator_Empty(t *testing.T) {
	repos := setupRepos(t)
	it := NewRecordIterator(DocumentStore(repos.Documents), 10, false)

	calls := 0
	err := it.ForEach(context.Background(), func([]*core.Document) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestRecordIterator_OnlyMissing(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	docs := seedDocuments(t, repos, "un", "deux", "trois")

	docs[1].SetVector([]float32{1, 0})
	_, err := repos.Documents.UpdateDocuments(ctx, docs[1])
	require.NoError(t, err)

	it := NewRecordIterator(DocumentStore(repos.Documents), 10, true)
	pending, err := it.Records(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, d := range pending {
		assert.NotEqual(t, "deux", d.Content)
	}
}

func TestRecordIterator_StopsOnError(t *testing.T) {
	repos := setupRepos(t)
	seedPractices(t, repos, 5)

	stop := errors.New("stop")
	it := NewRecordIterator(PracticeStore(repos.Practices), 2, false)
	calls := 0
	err := it.ForEach(context.Background(), func([]*core.Practice) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRecordIterator_Canceled(t *testing.T) {
	repos := setupRepos(t)
	seedPractices(t, repos, 5)

	ctx, cancel := context.WithCancel(context.Background())
	it := NewRecordIterator(PracticeStore(repos.Practices), 2, false)
	calls := 0
	err := it.ForEach(ctx, func([]*core.Practice) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
