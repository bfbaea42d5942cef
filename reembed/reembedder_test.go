package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/praxis/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      3,
		ReportInterval: 3,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		Unit:           "practices",
	}
}

func TestNewReembedder_Validation(t *testing.T) {
	repos := setupRepos(t)

	_, err := NewReembedder(PracticeStore(repos.Practices), nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewReembedder[*testRecord](nil, mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)

	r, err := NewReembedder(PracticeStore(repos.Practices), mock.NewMockEmbedder(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, r.iterator.batchSize)
}

func TestReembedder_Practices(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	seedPractices(t, repos, 10)

	var buf bytes.Buffer
	r, err := NewReembedder(PracticeStore(repos.Practices), mock.NewMockEmbedderWithDimension(8), testConfig(), &buf)
	require.NoError(t, err)

	n, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	practices, err := repos.Practices.ListPractices(ctx)
	require.NoError(t, err)
	for _, p := range practices {
		require.Len(t, p.Vector, 8, "practice %s", p.Name)
		var sum float64
		for _, v := range p.Vector {
			sum += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, sum, 1e-4)
	}

	out := buf.String()
	assert.Contains(t, out, "Reembedding 10 practices")
	assert.Contains(t, out, "10/10 practices")
}

func TestReembedder_OnlyMissingDocuments(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	docs := seedDocuments(t, repos, "alpha", "beta", "gamma")
	docs[0].SetVector([]float32{0, 1})
	_, err := repos.Documents.UpdateDocuments(ctx, docs[0])
	require.NoError(t, err)

	cfg := testConfig()
	cfg.OnlyMissing = true
	cfg.Unit = "documents"
	embedder := mock.NewMockEmbedderWithDimension(4)
	r, err := NewReembedder(DocumentStore(repos.Documents), embedder, cfg, nil)
	require.NoError(t, err)

	n, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	kept, err := repos.Documents.GetDocument(ctx, docs[0].Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, kept.Vector)
}

func TestReembedder_Empty(t *testing.T) {
	repos := setupRepos(t)

	var buf bytes.Buffer
	embedder := mock.NewMockEmbedder()
	r, err := NewReembedder(PracticeStore(repos.Practices), embedder, testConfig(), &buf)
	require.NoError(t, err)

	n, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "0 practices")
	assert.Zero(t, embedder.CallCount())
}

func TestReembedder_PartialFailure(t *testing.T) {
	repos := setupRepos(t)
	seedPractices(t, repos, 7)

	failure := errors.New("quota exceeded")
	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls > 1 {
			return nil, failure
		}
		return unnormalized(ctx, texts)
	}
	r, err := NewReembedder(PracticeStore(repos.Practices), embedder, testConfig(), nil)
	require.NoError(t, err)

	n, err := r.Run(context.Background())
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 3, n, "the first batch stays written")
}

type testRecord struct{ vector []float32 }

func (r *testRecord) EmbeddingText() string { return "" }
func (r *testRecord) SetVector(v []float32) { r.vector = v }
func (r *testRecord) Embedded() bool        { return len(r.vector) > 0 }
