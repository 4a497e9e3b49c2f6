package engine

import (
	"encoding/json"
	"os"
	"time"
)

// WorkerStatus is the sidecar file written while a foreground worker pool
// is attached, so `status` can report on it from a separate CLI
// invocation.
type WorkerStatus struct {
	Count         int       `json:"count"`
	StartedAt     time.Time `json:"started_at"`
	WorkerPoolPid int       `json:"worker_pool_pid"`
}

func writeStatus(path string, count int) error {
	status := WorkerStatus{
		Count:         count,
		StartedAt:     time.Now(),
		WorkerPoolPid: os.Getpid(),
	}
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func removeStatus(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// ReadStatus loads the worker pool sidecar file, returning nil, nil if no
// worker pool is currently attached.
func ReadStatus(path string) (*WorkerStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var status WorkerStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
