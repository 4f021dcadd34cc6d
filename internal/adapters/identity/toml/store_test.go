package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/containerdesk/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	config := viper.New()
	config.Set("identity.path", filepath.Join(t.TempDir(), "identity.toml"))

	store, err := NewStore(config)
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, store.Save(context.Background(), "c-17"))

	id, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ClientID("c-17"), id)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "version = 1")
	assert.Contains(t, string(raw), "saved_at = '2026-03-01T08:00:00Z'")
}

func TestStoreSaveOverwritesSingleSlot(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), "c-1"))
	require.NoError(t, store.Save(context.Background(), "c-2"))

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ClientID("c-2"), id)
}

func TestStoreFileMode(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), "c-1"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreClear(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Clear(context.Background()))

	require.NoError(t, store.Save(context.Background(), "c-1"))
	require.NoError(t, store.Clear(context.Background()))

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestStoreRejectsEmptyID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.Error(t, store.Save(context.Background(), " "))
}

func TestStoreRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("version = 9\n"), 0o600))

	_, err := store.Load(context.Background())
	require.ErrorContains(t, err, "unsupported identity schema version 9")
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Save(ctx, "c-1"), context.Canceled)
	_, err := store.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreConcurrentSavesLeaveValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "identity.toml")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			config := viper.New()
			config.Set("identity.path", path)
			store, err := NewStore(config)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.Save(context.Background(), domain.ClientID("c-"+strconv.Itoa(i))))
		}(i)
	}
	wg.Wait()

	config := viper.New()
	config.Set("identity.path", path)
	store, err := NewStore(config)
	require.NoError(t, err)

	id, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^c-\d$`, string(id))
}
