package recovery_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/recovery"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/stretchr/testify/require"
)

func TestSweepReclaimsStaleProcessingJobs(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.ConfigSet(storage.KeyLockTimeout, "60"))

	id, err := store.Enqueue("sleep 100", 3, 0, 0, 0)
	require.NoError(t, err)
	_, err = store.PickAndLock()
	require.NoError(t, err)
	_, err = store.Db.Exec(`UPDATE jobs SET updated_at = ? WHERE id = ?`, time.Now().Add(-time.Hour), id)
	require.NoError(t, err)

	n, err := recovery.Sweep(store)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	job, err := store.Get(id)
	require.NoError(t, err)
	require.Equal(t, model.StatePending, job.State)
}

func TestSweepNoOpWhenNothingStale(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	n, err := recovery.Sweep(store)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
