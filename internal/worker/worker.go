// Package worker implements the claim/execute/finalize loop each worker
// goroutine runs.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pranavk/queuectl/internal/executor"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/storage"
)

// Worker claims one job at a time from the store, executes it, and applies
// the resulting state transition.
type Worker struct {
	ID       int
	Store    *storage.Store
	Executor *executor.Executor
}

func New(id int, store *storage.Store, exec *executor.Executor) *Worker {
	return &Worker{ID: id, Store: store, Executor: exec}
}

const (
	idleSleep     = 1 * time.Second
	interJobSleep = 200 * time.Millisecond
)

// Run polls for jobs until ctx is cancelled or the store's stop_workers
// flag is set. A job that has already been claimed always runs to
// completion before the stop is observed.
func (w *Worker) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	log.Printf("worker %d: starting", w.ID)

	for {
		if ctx.Err() != nil {
			log.Printf("worker %d: shutting down (signal)", w.ID)
			return
		}
		if w.Store.StopWorkers() {
			log.Printf("worker %d: stop flag set, exiting", w.ID)
			return
		}

		job, err := w.Store.PickAndLock()
		if err != nil {
			log.Printf("worker %d: store error, exiting: %v", w.ID, err)
			return
		}
		if job == nil {
			if !sleepOrDone(ctx, idleSleep) {
				return
			}
			continue
		}

		log.Printf("worker %d: claimed job %s", w.ID, job.ID)
		w.processJob(job)

		if !sleepOrDone(ctx, interJobSleep) {
			return
		}
	}
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (w *Worker) processJob(job *model.Job) {
	result := w.Executor.Execute(job)

	trace := model.Trace{
		Stdout:         result.Stdout,
		Stderr:         result.Stderr,
		ExitCode:       result.ExitCode,
		RuntimeSec:     result.RuntimeSec,
		TraceCreatedAt: time.Now(),
	}
	if err := w.Store.PersistTrace(job.ID, trace); err != nil {
		log.Printf("worker %d: failed to persist trace for %s: %v", w.ID, job.ID, err)
	}

	outcome := applyOutcome(job, result, w.Store.BackoffBase())
	if err := w.Store.Finalize(job.ID, outcome); err != nil {
		log.Printf("worker %d: failed to finalize %s: %v", w.ID, job.ID, err)
		return
	}

	log.Printf("worker %d: job %s -> %s", w.ID, job.ID, outcome.State)
}
