package boardserver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/lostboard/internal/model"
)

func openRepo(t *testing.T) Repository {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(ctx, model.Item{ID: id, Title: "t-" + id, Location: "L", Date: "2025-01-01", ImageURL: "u"}))
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestRepositoryEmptyListIsNotNil(t *testing.T) {
	items, err := openRepo(t).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRepositoryRoundTripsFlags(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	want := model.Item{ID: "1", ImageURL: "https://x/y.png", Title: "Wallet", Location: "Cafe", Date: "2025-03-01", Kind: model.KindFound}
	require.NoError(t, repo.Create(ctx, want))

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepositorySetStatus(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Create(ctx, model.Item{ID: "1", Title: "Keys"}))

	it, err := repo.SetStatus(ctx, "1", model.StatusDone)
	require.NoError(t, err)
	assert.True(t, it.Done())

	// Done never goes back to active.
	it, err = repo.SetStatus(ctx, "1", model.StatusActive)
	require.NoError(t, err)
	assert.True(t, it.Done())

	// Repeating the resolve is fine.
	_, err = repo.SetStatus(ctx, "1", model.StatusDone)
	require.NoError(t, err)
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.SetStatus(ctx, "missing", model.StatusDone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Create(ctx, model.Item{ID: "1"}))
	assert.Error(t, repo.Create(ctx, model.Item{ID: "1"}))
}
