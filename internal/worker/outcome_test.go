package worker

import (
	"testing"
	"time"

	"github.com/pranavk/queuectl/internal/executor"
	"github.com/pranavk/queuectl/internal/model"

	"github.com/stretchr/testify/require"
)

func TestApplyOutcomeSuccess(t *testing.T) {
	job := &model.Job{Attempts: 1, MaxRetries: 3}
	outcome := applyOutcome(job, executor.ExecResult{Success: true}, 2.0)

	require.Equal(t, model.StateCompleted, outcome.State)
	require.Equal(t, 1, outcome.Attempts)
	require.Nil(t, outcome.LastError)
}

func TestApplyOutcomeRetryableFailureBacksOff(t *testing.T) {
	job := &model.Job{Attempts: 0, MaxRetries: 3}
	before := time.Now()

	code := 1
	outcome := applyOutcome(job, executor.ExecResult{Success: false, ExitCode: &code}, 2.0)

	require.Equal(t, model.StatePending, outcome.State)
	require.Equal(t, 1, outcome.Attempts)
	require.NotNil(t, outcome.LastError)
	require.Equal(t, "exit 1", *outcome.LastError)
	require.GreaterOrEqual(t, outcome.RunAfter.Sub(before), time.Duration(1)*time.Second)
}

func TestApplyOutcomeExhaustsRetriesToDead(t *testing.T) {
	job := &model.Job{Attempts: 2, MaxRetries: 3}

	code := 1
	outcome := applyOutcome(job, executor.ExecResult{Success: false, ExitCode: &code}, 2.0)

	require.Equal(t, model.StateDead, outcome.State)
	require.Equal(t, 3, outcome.Attempts)
	require.NotNil(t, outcome.LastError)
}

func TestApplyOutcomeMaxRetriesZeroDiesImmediately(t *testing.T) {
	job := &model.Job{Attempts: 0, MaxRetries: 0}

	code := 1
	outcome := applyOutcome(job, executor.ExecResult{Success: false, ExitCode: &code}, 2.0)

	require.Equal(t, model.StateDead, outcome.State)
	require.Equal(t, 1, outcome.Attempts)
}

func TestFailureReasonPrecedence(t *testing.T) {
	job := &model.Job{TimeoutSec: 2}

	require.Equal(t, "Timeout after 2s", failureReason(job, executor.ExecResult{KilledByTimeout: true}))
	require.Equal(t, "boom", failureReason(job, executor.ExecResult{Stderr: "boom"}))

	code := 3
	require.Equal(t, "exit 3", failureReason(job, executor.ExecResult{ExitCode: &code}))
}
