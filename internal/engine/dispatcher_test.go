package engine_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pranavk/queuectl/internal/engine"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/queueerr"
	"github.com/pranavk/queuectl/internal/storage"

	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*engine.Dispatcher, *storage.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewStore(filepath.Join(dir, "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return engine.New(store, dir), store
}

func TestShowUnknownJob(t *testing.T) {
	d, _ := newTestDispatcher(t)
	_, err := d.Show("missing")
	require.ErrorIs(t, err, queueerr.ErrJobNotFound)
}

func TestShowReturnsEnqueuedFields(t *testing.T) {
	d, store := newTestDispatcher(t)
	id, err := store.Enqueue("echo hi", 3, 0, 5, 1)
	require.NoError(t, err)

	job, err := d.Show(id)
	require.NoError(t, err)
	require.Equal(t, "echo hi", job.Command)
	require.Equal(t, 5, job.TimeoutSec)
	require.Equal(t, 1, job.Priority)
}

func TestReplayDryRunDoesNotMutateState(t *testing.T) {
	d, store := newTestDispatcher(t)
	id, err := store.Enqueue("echo hi", 3, 0, 0, 0)
	require.NoError(t, err)

	command, err := d.Replay(id, false)
	require.NoError(t, err)
	require.Equal(t, "echo hi", command)

	job, err := store.Get(id)
	require.NoError(t, err)
	require.Equal(t, model.StatePending, job.State)
	require.Equal(t, 0, job.Attempts)
}

func TestReplayUnknownJob(t *testing.T) {
	d, _ := newTestDispatcher(t)
	_, err := d.Replay("missing", false)
	require.ErrorIs(t, err, queueerr.ErrJobNotFound)
}

func TestDlqRetryDelegatesToStore(t *testing.T) {
	d, store := newTestDispatcher(t)
	id, err := store.Enqueue("exit 1", 1, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, store.Finalize(id, storage.FinalizeOutcome{
		State:    model.StateDead,
		Attempts: 1,
		RunAfter: time.Now(),
	}))

	require.NoError(t, d.DlqRetry(id))

	job, err := store.Get(id)
	require.NoError(t, err)
	require.Equal(t, model.StatePending, job.State)
}

func TestEnqueueTestBatchDeterministicFailurePattern(t *testing.T) {
	d, store := newTestDispatcher(t)

	ids, err := d.EnqueueTestBatch(4, 0.5)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	for i, id := range ids {
		job, err := store.Get(id)
		require.NoError(t, err)
		if i%2 == 0 {
			require.Equal(t, "exit 1", job.Command)
		} else {
			require.Equal(t, "true", job.Command)
		}
	}
}

func TestStopWorkersSetsStoreFlag(t *testing.T) {
	d, store := newTestDispatcher(t)
	require.False(t, store.StopWorkers())

	require.NoError(t, d.StopWorkers())
	require.True(t, store.StopWorkers())
}
