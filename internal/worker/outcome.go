package worker

import (
	"fmt"
	"math"
	"time"

	"github.com/pranavk/queuectl/internal/executor"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/storage"
)

// applyOutcome computes the post-execution state transition. next is the
// attempt count this execution would represent if it counts as a failure.
func applyOutcome(job *model.Job, result executor.ExecResult, backoffBase float64) storage.FinalizeOutcome {
	if result.Success {
		return storage.FinalizeOutcome{
			State:    model.StateCompleted,
			Attempts: job.Attempts,
			RunAfter: job.RunAfter,
		}
	}

	next := job.Attempts + 1
	reason := failureReason(job, result)

	if next >= job.MaxRetries {
		return storage.FinalizeOutcome{
			State:     model.StateDead,
			Attempts:  next,
			RunAfter:  job.RunAfter,
			LastError: &reason,
		}
	}

	delay := math.Floor(math.Pow(backoffBase, float64(next)))
	return storage.FinalizeOutcome{
		State:     model.StatePending,
		Attempts:  next,
		RunAfter:  time.Now().Add(time.Duration(delay) * time.Second),
		LastError: &reason,
	}
}

// failureReason renders the last_error text per the precedence timeout >
// stderr > exit code.
func failureReason(job *model.Job, result executor.ExecResult) string {
	if result.KilledByTimeout {
		return fmt.Sprintf("Timeout after %ds", job.TimeoutSec)
	}
	if result.Stderr != "" {
		return result.Stderr
	}
	if result.ExitCode != nil {
		return fmt.Sprintf("exit %d", *result.ExitCode)
	}
	return "unknown failure"
}
