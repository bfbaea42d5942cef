package retrieval

import (
	"context"
	"testing"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() []*core.Document {
	contents := []string{
		"La sophrologie aide à gérer le stress et l'anxiété.",
		"Le yoga améliore la qualité du sommeil.",
		"La naturopathie accompagne les troubles de la digestion.",
		"La méditation réduit l'anxiété et le stress chronique.",
		"La réflexologie plantaire soulage les tensions du dos.",
		"L'acupuncture apaise les douleurs articulaires.",
	}
	docs := make([]*core.Document, len(contents))
	for i, c := range contents {
		docs[i] = &core.Document{
			Id:       core.IDFromContent(c),
			Content:  c,
			Metadata: map[string]string{"file_name": "doc" + string(rune('a'+i)) + ".txt"},
		}
	}
	return docs
}

func TestSparseRetriever_Retrieve(t *testing.T) {
	docs := testCorpus()
	s, err := NewSparseRetriever(docs)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Size())

	results, err := s.Retrieve(context.Background(), "anxiete", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Same(t, docs[0], results[0].Document)
	assert.Same(t, docs[3], results[1].Document)
	for _, r := range results {
		assert.Contains(t, r.Document.Content, "anxiété")
		assert.Greater(t, r.Score, 0.0)
	}

	results, err = s.Retrieve(context.Background(), "SOMMEIL", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Same(t, docs[1], results[0].Document)
}

func TestSparseRetriever_Limits(t *testing.T) {
	s, err := NewSparseRetriever(testCorpus())
	require.NoError(t, err)

	results, err := s.Retrieve(context.Background(), "stress anxiété", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	_, err = s.Retrieve(context.Background(), "stress", 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Retrieve(ctx, "stress", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSparseRetriever_EmptyCorpus(t *testing.T) {
	_, err := NewSparseRetriever(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = NewSparseRetrieverFromRepository(context.Background(), repos.Documents)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = NewSparseRetrieverFromRepository(context.Background(), nil)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)
}

func TestSparseRetriever_FromRepository(t *testing.T) {
	ctx := context.Background()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Documents.AddDocuments(ctx, testCorpus()...)
	require.NoError(t, err)

	s, err := NewSparseRetrieverFromRepository(ctx, repos.Documents)
	require.NoError(t, err)
	assert.Equal(t, 6, s.Size())

	results, err := s.Retrieve(ctx, "digestion", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Document.Content, "naturopathie")
}

func TestSparseRetriever_PracticeNameInMostChunks(t *testing.T) {
	contents := []string{
		"Le yoga doux soulage le mal de dos et les tensions.",
		"Le yoga améliore la qualité du sommeil.",
		"Pratique du yoga : postures et respiration contre le stress.",
		"Le yoga nidra se pratique allongé.",
		"La naturopathie accompagne les troubles de la digestion.",
	}
	docs := make([]*core.Document, len(contents))
	for i, c := range contents {
		docs[i] = &core.Document{Id: core.IDFromContent(c), Content: c}
	}
	s, err := NewSparseRetriever(docs)
	require.NoError(t, err)

	// yoga is in four of five chunks: its negative idf is floored and the
	// symptom terms decide the order
	assert.InDelta(t, 0.23766101429973846, s.index.idf["yoga"], 1e-12)

	query := "Informations détaillées sur la pratique Yoga pour traiter stress, mal de dos"
	results, err := s.Retrieve(context.Background(), query, 10)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Same(t, docs[0], results[0].Document)
	assert.Same(t, docs[2], results[1].Document)
	assert.Same(t, docs[3], results[2].Document)
	assert.Same(t, docs[1], results[3].Document)
	assert.InDelta(t, 2.188661205964906, results[0].Score, 1e-9)
	assert.InDelta(t, 0.25693082626998753, results[3].Score, 1e-9)
}
