package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocksmith/adminctl/internal/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "adminctl", "session.json"))
}

func TestStore_ReadMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read(context.Background(), ports.KeyAccessToken)

	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "tok-1"))
	require.NoError(t, store.Write(ctx, ports.KeyRefreshToken, "ref-1"))

	got, err := store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	got, err = store.Read(ctx, ports.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got)
}

func TestStore_WriteReplacesValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "old"))
	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "new"))

	got, err := store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Write(ctx, ports.KeyUser, `{"id":"u1"}`))
	require.NoError(t, store.Delete(ctx, ports.KeyUser))

	_, err := store.Read(ctx, ports.KeyUser)
	require.ErrorIs(t, err, ports.ErrNotFound)

	// Deleting again is a no-op, as is deleting before any write.
	require.NoError(t, store.Delete(ctx, ports.KeyUser))
	require.NoError(t, newTestStore(t).Delete(ctx, ports.KeyUser))
}

func TestStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits not meaningful on windows")
	}
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := New(path)

	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_CorruptFileDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	store := New(path)

	_, err := store.Read(ctx, ports.KeyAccessToken)
	require.ErrorIs(t, err, ports.ErrNotFound)

	// A write recovers the file.
	require.NoError(t, store.Write(ctx, ports.KeyAccessToken, "tok"))
	got, err := store.Read(ctx, ports.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}
