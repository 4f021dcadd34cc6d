package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pushTokenKey = "cdesk/push/token"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/etc/passwd", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), pushTokenKey, "fcm-token-1"))

	got, err := store.Get(context.Background(), pushTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "fcm-token-1", got)

	info, err := os.Stat(filepath.Join(root, pushTokenKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMode), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(root, "cdesk", "push", ".secret-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStoreGetTrimsHandEditedFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cdesk", "push"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, pushTokenKey), []byte("  fcm-token-2\n"), 0o600))

	got, err := NewStore(root).Get(context.Background(), pushTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "fcm-token-2", got)
}

func TestStoreRejectsEmptyValues(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	assert.ErrorContains(t, store.Put(context.Background(), pushTokenKey, " \n"), "value is empty")
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), pushTokenKey)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), pushTokenKey, "fcm-token-1"))

	require.NoError(t, store.Delete(context.Background(), pushTokenKey))
	require.NoError(t, store.Delete(context.Background(), pushTokenKey))
}
