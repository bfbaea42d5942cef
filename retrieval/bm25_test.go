package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25Index_Score(t *testing.T) {
	idx, err := newBM25Index([]string{
		"sommeil sommeil stress",
		"digestion",
		"fatigue",
	})
	require.NoError(t, err)

	scores := idx.score([]string{"sommeil"})
	assert.InDelta(t, 0.5804836633704439, scores[0], 1e-12)
	assert.Zero(t, scores[1])
	assert.Zero(t, scores[2])
}

func TestBM25Index_NegativeIDF(t *testing.T) {
	idx, err := newBM25Index([]string{
		"yoga sommeil",
		"yoga stress",
		"yoga digestion",
	})
	require.NoError(t, err)

	// yoga appears everywhere, its idf is replaced by epsilon * average idf
	assert.InDelta(t, -0.02583957985983383, idx.idf["yoga"], 1e-12)

	hits := idx.top([]string{"yoga"}, 10)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{hits[0].doc, hits[1].doc, hits[2].doc})
}

func TestBM25Index_Top(t *testing.T) {
	idx, err := newBM25Index([]string{
		"respiration et stress",
		"stress stress chronique",
		"digestion difficile",
		"sommeil léger",
		"fatigue intense",
		"respiration lente",
	})
	require.NoError(t, err)

	hits := idx.top([]string{"stress"}, 10)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].doc)
	assert.InDelta(t, 0.7473082292154081, hits[0].score, 1e-12)
	assert.Equal(t, 0, hits[1].doc)
	assert.InDelta(t, 0.6088626807751034, hits[1].score, 1e-12)

	hits = idx.top([]string{"stress"}, 1)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].doc)

	assert.Empty(t, idx.top([]string{"inconnu"}, 10))
	assert.Empty(t, idx.top(nil, 10))
}

func TestBM25Index_ZeroIDFKeepsCorpusOrder(t *testing.T) {
	// stress sits in exactly half the corpus, so its idf is ln(2.5) - ln(2.5)
	idx, err := newBM25Index([]string{
		"stress passager",
		"stress stress chronique",
		"digestion difficile",
		"sommeil léger",
	})
	require.NoError(t, err)
	assert.Zero(t, idx.idf["stress"])

	hits := idx.top([]string{"stress"}, 10)
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].doc)
	assert.Equal(t, 1, hits[1].doc)
	assert.Zero(t, hits[0].score)
	assert.Zero(t, hits[1].score)
}

func TestBM25Index_EmptyCorpus(t *testing.T) {
	_, err := newBM25Index(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestBM25Index_OnlyStopWords(t *testing.T) {
	idx, err := newBM25Index([]string{"et le la", "de du"})
	require.NoError(t, err)
	assert.Empty(t, idx.top([]string{"le"}, 5))
}
