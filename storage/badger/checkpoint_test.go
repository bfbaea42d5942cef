package badger

import (
	"context"
	"testing"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpoints(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	repo := repos.Checkpoints

	missing, err := repo.LoadCheckpoint(ctx, "docs/yoga.txt")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.SaveCheckpoint(ctx, &core.Checkpoint{
		Source:      "docs/yoga.txt",
		ContentHash: core.IDFromContent("contenu"),
		Chunks:      3,
	})
	require.NoError(t, err)

	got, err := repo.LoadCheckpoint(ctx, "docs/yoga.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, core.IDFromContent("contenu"), got.ContentHash)
	assert.Equal(t, 3, got.Chunks)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSaveCheckpointRequiresSource(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	err = repos.Checkpoints.SaveCheckpoint(context.Background(), &core.Checkpoint{Chunks: 1})
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}
