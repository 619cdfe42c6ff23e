package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store ArtifactStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "syntax_classifier")
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	require.NoError(t, store.Put(ctx, "syntax_classifier", []byte(`{"kind":"linear","coef":[1]}`)))
	require.NoError(t, store.Put(ctx, "structure_classifier", []byte(`{"kind":"presence","width":3}`)))

	data, err := store.Get(ctx, "syntax_classifier")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"linear","coef":[1]}`, string(data))

	// Overwrite keeps a single entry.
	require.NoError(t, store.Put(ctx, "syntax_classifier", []byte(`{"kind":"linear","coef":[2]}`)))
	data, err = store.Get(ctx, "syntax_classifier")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"linear","coef":[2]}`, string(data))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"structure_classifier", "syntax_classifier"}, names)
}

func TestDirStore(t *testing.T) {
	store, err := NewDirStore(filepath.Join(t.TempDir(), "models"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)

	err = store.Put(context.Background(), "../escape", []byte(`{}`))
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)

	err = store.Put(context.Background(), "broken", []byte("not json"))
	assert.Error(t, err)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "syntax_vectorizer", []byte(`{"kind":"tfidf"}`)))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Get(ctx, "syntax_vectorizer")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"tfidf"}`, string(data))
}

func TestSQLStore_Rebind(t *testing.T) {
	pg := &SQLStore{dialect: "pgx"}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	lite := &SQLStore{dialect: "sqlite3"}
	assert.Equal(t, "x = ?", lite.rebind("x = ?"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Backend: "dir", Path: filepath.Join(dir, "m")})
	require.NoError(t, err)
	assert.IsType(t, &DirStore{}, s)

	s, err = Open(Options{Backend: "sqlite", Path: filepath.Join(dir, "m.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Options{Backend: "postgres"})
	assert.Error(t, err)

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)
}
