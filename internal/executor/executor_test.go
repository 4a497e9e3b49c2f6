package executor_test

import (
	"testing"

	"github.com/pranavk/queuectl/internal/executor"
	"github.com/pranavk/queuectl/internal/model"

	"github.com/stretchr/testify/require"
)

func TestExecuteSuccess(t *testing.T) {
	e := executor.New(65536)
	job := &model.Job{Command: "echo OK"}

	result := e.Execute(job)

	require.True(t, result.Success)
	require.NotNil(t, result.ExitCode)
	require.Equal(t, 0, *result.ExitCode)
	require.Contains(t, result.Stdout, "OK")
	require.False(t, result.KilledByTimeout)
}

func TestExecuteNonZeroExit(t *testing.T) {
	e := executor.New(65536)
	job := &model.Job{Command: "exit 7"}

	result := e.Execute(job)

	require.False(t, result.Success)
	require.NotNil(t, result.ExitCode)
	require.Equal(t, 7, *result.ExitCode)
	require.False(t, result.KilledByTimeout)
}

func TestExecuteTimeoutKillsChild(t *testing.T) {
	e := executor.New(65536)
	job := &model.Job{Command: "sleep 5", TimeoutSec: 1}

	result := e.Execute(job)

	require.False(t, result.Success)
	require.True(t, result.KilledByTimeout)
	require.Nil(t, result.ExitCode)
	require.LessOrEqual(t, result.RuntimeSec, 2)
}

func TestExecuteUnboundedNeverKills(t *testing.T) {
	e := executor.New(65536)
	job := &model.Job{Command: "sleep 1", TimeoutSec: 0}

	result := e.Execute(job)

	require.True(t, result.Success)
	require.False(t, result.KilledByTimeout)
}

func TestExecuteCapturesStderr(t *testing.T) {
	e := executor.New(65536)
	job := &model.Job{Command: "echo oops >&2; exit 1"}

	result := e.Execute(job)

	require.False(t, result.Success)
	require.Contains(t, result.Stderr, "oops")
}

func TestExecuteTruncatesRunawayOutput(t *testing.T) {
	e := executor.New(64)
	job := &model.Job{Command: "yes | head -c 4096"}

	result := e.Execute(job)

	require.LessOrEqual(t, len(result.Stdout), 64+64) // ceiling plus marker slack
	require.Contains(t, result.Stdout, "truncated")
}
