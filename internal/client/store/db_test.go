package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"duckmail/internal/client/models"
	"duckmail/internal/client/repositories/accounts"
)

func TestInitDatabase_MigratesAndStores(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "duckmail.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := accounts.NewSQLiteRepository(db)
	idx, err := repo.Add(ctx, &models.AccountRecord{
		AccessToken: "tok",
		Email:       "alice1@duck.com",
		Username:    "alice1",
		Remark:      "a***1@duck.com",
		NextAlias:   "xyz123@duck.com",
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), idx)

	got, err := repo.Get(ctx, idx)
	require.NoError(t, err)
	require.Equal(t, "alice1", got.Username)
}

func TestInitDatabase_Idempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "duckmail.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening applies no pending migrations and must not fail.
	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
