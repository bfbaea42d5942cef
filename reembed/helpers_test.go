package reembed

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage/badger"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return repos
}

func seedPractices(t *testing.T, repos *badger.Repositories, n int) []*core.Practice {
	t.Helper()
	practices := make([]*core.Practice, n)
	for i := range practices {
		practices[i] = &core.Practice{
			Name:        fmt.Sprintf("Pratique %d", i),
			Description: core.Description{Full: fmt.Sprintf("Description complète numéro %d", i)},
		}
	}
	added, err := repos.Practices.AddPractices(context.Background(), practices...)
	require.NoError(t, err)
	return added
}

func seedDocuments(t *testing.T, repos *badger.Repositories, contents ...string) []*core.Document {
	t.Helper()
	docs := make([]*core.Document, len(contents))
	for i, c := range contents {
		docs[i] = &core.Document{Content: c}
	}
	added, err := repos.Documents.AddDocuments(context.Background(), docs...)
	require.NoError(t, err)
	return added
}

// unnormalized returns {1,2,2} for every text; its norm is 3.
func unnormalized(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 2, 2}
	}
	return out, nil
}
