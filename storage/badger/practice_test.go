package badger

import (
	"context"
	"testing"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPractice(name string, vector ...float32) *core.Practice {
	return &core.Practice{
		Name:        name,
		Description: core.Description{Full: "Description de " + name},
		Indications: core.Indications{
			Primary: []core.PrimaryIndication{{Condition: "stress"}},
		},
		Vector: vector,
	}
}

func TestPracticeBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	repo := repos.Practices

	added, err := repo.AddPractices(ctx, newPractice("Sophrologie", 1, 0), newPractice("Yoga", 0, 1))
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, core.IDFromContent("Sophrologie"), added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())
	assert.Equal(t, added[0].InsertedAt, added[0].UpdatedAt)

	got, err := repo.GetPractice(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "Yoga", got.Name)
	assert.Equal(t, []float32{0, 1}, got.Vector)

	byName, err := repo.GetPracticeByName(ctx, "  sophrologie ")
	require.NoError(t, err)
	assert.Equal(t, added[0].Id, byName.Id)

	count, err := repo.CountPractices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := repo.ListPractices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddPractices_Duplicate(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	_, err = repos.Practices.AddPractices(ctx, newPractice("Yoga"))
	require.NoError(t, err)

	_, err = repos.Practices.AddPractices(ctx, newPractice("Yoga"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same name with a different ID still collides on the name index
	other := newPractice("YOGA")
	other.Id = 7
	_, err = repos.Practices.AddPractices(ctx, other)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestAddPractices_Invalid(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Practices.AddPractices(context.Background(), newPractice("  "))
	assert.ErrorIs(t, err, core.ErrInvalidPractice)

	count, err := repos.Practices.CountPractices(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListPractices_Ordered(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	names := []string{"Yoga", "Méditation", "Acupuncture", "Sophrologie", "Naturopathie"}
	for _, name := range names {
		_, err := repos.Practices.AddPractices(ctx, newPractice(name))
		require.NoError(t, err)
	}

	first, err := repos.Practices.ListPractices(ctx)
	require.NoError(t, err)
	require.Len(t, first, len(names))
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Id, first[i].Id)
	}

	second, err := repos.Practices.ListPractices(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdatePractices(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	repo := repos.Practices

	added, err := repo.AddPractices(ctx, newPractice("Yoga"))
	require.NoError(t, err)
	insertedAt := added[0].InsertedAt

	practice := added[0]
	practice.Name = "Yoga Nidra"
	practice.Vector = []float32{0.5, 0.5}
	_, err = repo.UpdatePractices(ctx, practice)
	require.NoError(t, err)

	got, err := repo.GetPractice(ctx, practice.Id)
	require.NoError(t, err)
	assert.Equal(t, "Yoga Nidra", got.Name)
	assert.Equal(t, []float32{0.5, 0.5}, got.Vector)
	assert.True(t, got.InsertedAt.Equal(insertedAt))
	assert.False(t, got.UpdatedAt.Before(insertedAt))

	_, err = repo.GetPracticeByName(ctx, "Yoga")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.GetPracticeByName(ctx, "yoga nidra")
	assert.NoError(t, err)

	missing := newPractice("Reiki")
	missing.Id = 42
	_, err = repo.UpdatePractices(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeletePractices(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	repo := repos.Practices

	added, err := repo.AddPractices(ctx, newPractice("Yoga"))
	require.NoError(t, err)

	require.NoError(t, repo.DeletePractices(ctx, added[0].Id))

	_, err = repo.GetPractice(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.GetPracticeByName(ctx, "Yoga")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeletePractices(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The name can be reused once deleted
	_, err = repo.AddPractices(ctx, newPractice("Yoga"))
	assert.NoError(t, err)
}
