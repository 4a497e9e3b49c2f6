package config_test

import (
	"path/filepath"
	"testing"

	"github.com/pranavk/queuectl/internal/config"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedPopulatesEmptyRegistry(t *testing.T) {
	store := newTestStore(t)
	cfg := &config.Config{BackoffBase: 3.5, MaxTraceBytes: 4096}

	require.NoError(t, config.Seed(store, cfg))

	require.Equal(t, 3.5, store.BackoffBase())
	require.Equal(t, 4096, store.MaxTraceBytes())
}

func TestSeedDoesNotOverrideExistingRegistryValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.ConfigSet(storage.KeyBackoffBase, "9"))

	cfg := &config.Config{BackoffBase: 3.5, MaxTraceBytes: 4096}
	require.NoError(t, config.Seed(store, cfg))

	require.Equal(t, 9.0, store.BackoffBase())
	require.Equal(t, 4096, store.MaxTraceBytes())
}
