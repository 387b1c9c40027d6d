package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/smmdesk/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_PutGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "clients-storage")
	require.Equal(t, repository.ErrNotFound, err)

	require.NoError(t, repo.Put(ctx, "clients-storage", []byte(`[{"id":1}]`)))
	data, err := repo.Get(ctx, "clients-storage")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":1}]`, string(data))

	// Overwrite replaces the whole payload
	require.NoError(t, repo.Put(ctx, "clients-storage", []byte(`[]`)))
	data, err = repo.Get(ctx, "clients-storage")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(data))
}

func TestSnapshotRepository_Keys(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "projects-storage", []byte(`[]`)))
	require.NoError(t, repo.Put(ctx, "clients-storage", []byte(`[]`)))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"clients-storage", "projects-storage"}, keys)
}

func TestSnapshotRepository_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agency.db")
	ctx := context.Background()

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	require.NoError(t, NewSnapshotRepository(db).Put(ctx, "operators-storage", []byte(`[{"id":3}]`)))
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	db, err = New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	data, err := NewSnapshotRepository(db).Get(ctx, "operators-storage")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":3}]`, string(data))
}
