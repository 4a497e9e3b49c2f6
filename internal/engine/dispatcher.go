// Package engine implements the Dispatcher / Lifecycle component: it starts
// and stops the worker pool and exposes the test-batch enqueue, DLQ retry,
// replay and show operations the CLI boundary calls into. Signal handling
// stays in the CLI layer, which cancels the context passed to StartWorkers.
package engine

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/pranavk/queuectl/internal/executor"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/queueerr"
	"github.com/pranavk/queuectl/internal/storage"
	"github.com/pranavk/queuectl/internal/worker"
)

// Dispatcher owns the engine-scoped state (the store handle) and is passed
// explicitly to every operation instead of relying on package-level
// globals.
type Dispatcher struct {
	Store      *storage.Store
	StatusPath string
}

func New(store *storage.Store, dataDir string) *Dispatcher {
	return &Dispatcher{
		Store:      store,
		StatusPath: filepath.Join(dataDir, "worker.status"),
	}
}

// StartWorkers clears the stop flag and runs n worker goroutines in the
// foreground until ctx is cancelled or the store's stop flag is set, then
// waits for all of them to finish their current job before returning.
func (d *Dispatcher) StartWorkers(ctx context.Context, n int) error {
	if err := d.Store.ConfigSet(storage.KeyStopWorkers, "0"); err != nil {
		return fmt.Errorf("clear stop flag: %w", err)
	}

	jobExecutor := executor.New(d.Store.MaxTraceBytes())

	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		w := worker.New(i, d.Store, jobExecutor)
		go w.Run(ctx, &wg)
	}

	if err := writeStatus(d.StatusPath, n); err != nil {
		log.Printf("dispatcher: failed to write worker status file: %v", err)
	}

	wg.Wait()

	if err := removeStatus(d.StatusPath); err != nil {
		log.Printf("dispatcher: failed to remove worker status file: %v", err)
	}
	return nil
}

// StopWorkers sets the store's stop flag. Live workers observe it on their
// next loop iteration and exit after finishing any job already claimed.
func (d *Dispatcher) StopWorkers() error {
	return d.Store.ConfigSet(storage.KeyStopWorkers, "1")
}

// DlqRetry resurrects a dead job back to pending.
func (d *Dispatcher) DlqRetry(id string) error {
	return d.Store.DLQRetry(id)
}

// Show returns the job record, including trace fields.
func (d *Dispatcher) Show(id string) (*model.Job, error) {
	job, err := d.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, queueerr.ErrJobNotFound
	}
	return job, nil
}

// Replay reads a job's replayable_command. With confirm=false it is a dry
// run that only returns the command. With confirm=true it spawns a fresh
// child with inherited I/O, outside the engine: this is not a queued job
// and never mutates job state.
func (d *Dispatcher) Replay(id string, confirm bool) (string, error) {
	job, err := d.Store.Get(id)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "", queueerr.ErrJobNotFound
	}
	if !confirm {
		return job.ReplayableCommand, nil
	}

	cmd := exec.Command("sh", "-c", job.ReplayableCommand)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return job.ReplayableCommand, fmt.Errorf("replay %s: %w", id, err)
	}
	return job.ReplayableCommand, nil
}

// testJobTimeoutSec, testJobRetries and testJobPriority match the fixed
// parameters the "test" CLI verb enqueues with.
const (
	testJobTimeoutSec = 5
	testJobRetries    = 3
	testJobPriority   = 0
)

// EnqueueTestBatch deterministically enqueues count jobs, failing every kth
// one so repeated runs are reproducible for smoke-testing a fresh queue.
func (d *Dispatcher) EnqueueTestBatch(count int, failRate float64) ([]string, error) {
	k := int(math.Round(1 / math.Max(0.01, failRate)))
	if k < 1 {
		k = 1
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		command := "true"
		if i%k == 0 {
			command = "exit 1"
		}
		id, err := d.Store.Enqueue(command, testJobRetries, 0, testJobTimeoutSec, testJobPriority)
		if err != nil {
			return ids, fmt.Errorf("enqueue test batch: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
