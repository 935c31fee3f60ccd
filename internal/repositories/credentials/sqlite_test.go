package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := InitDatabase(context.Background(), "file:credstest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(context.Background()))
	return repo
}

func TestTokenRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	token, err := repo.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, repo.Save(ctx, "abc.def.ghi"))
	token, err = repo.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	// Last writer wins.
	require.NoError(t, repo.Save(ctx, "new.token.v2"))
	token, err = repo.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "new.token.v2", token)
}

func TestClear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "abc"))
	require.NoError(t, repo.Clear(ctx))

	token, err := repo.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	// Clearing an empty slot is fine.
	require.NoError(t, repo.Clear(ctx))
}
