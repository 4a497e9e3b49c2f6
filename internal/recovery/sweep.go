// Package recovery implements the startup Recovery Sweep that reclaims
// jobs abandoned mid-execution by a crashed process.
package recovery

import (
	"log"
	"time"

	"github.com/pranavk/queuectl/internal/storage"
)

// Sweep runs exactly once at process start, before any worker begins,
// returning processing jobs stuck past the configured lock timeout back to
// pending.
func Sweep(store *storage.Store) (int, error) {
	lockTimeout := time.Duration(store.LockTimeoutSeconds()) * time.Second

	n, err := store.ReclaimStale(lockTimeout)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("recovery sweep: reclaimed %d stale processing job(s) (lock_timeout=%s)", n, lockTimeout)
	}
	return n, nil
}
