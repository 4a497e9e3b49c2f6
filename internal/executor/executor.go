// Package executor supervises the subprocess for a single job execution.
package executor

import (
	"context"
	"os/exec"
	"syscall"
	"time"

	"github.com/pranavk/queuectl/internal/model"
)

// ExecResult is the structured outcome of one job execution attempt.
type ExecResult struct {
	Success         bool
	ExitCode        *int
	Stdout          string
	Stderr          string
	RuntimeSec      int
	KilledByTimeout bool
}

// Executor runs a job's command via the host shell and returns only once the
// child has been fully reaped.
type Executor struct {
	MaxTraceBytes int
}

func New(maxTraceBytes int) *Executor {
	if maxTraceBytes <= 0 {
		maxTraceBytes = 65536
	}
	return &Executor{MaxTraceBytes: maxTraceBytes}
}

// Execute spawns job.Command under "sh -c", enforcing job.TimeoutSec as a
// wall-clock ceiling. It blocks until the child exits, is killed, or fails
// to spawn.
func (e *Executor) Execute(job *model.Job) ExecResult {
	start := time.Now()

	ctx := context.Background()
	var cancel context.CancelFunc
	if job.TimeoutSec > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(job.TimeoutSec)*time.Second)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", job.Command)
	// Run the child in its own process group so a timeout kill takes any
	// grandchildren the shell spawned with it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	stdout := newBoundedBuffer(e.MaxTraceBytes)
	stderr := newBoundedBuffer(e.MaxTraceBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	runtimeSec := int(time.Since(start).Seconds())

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ExecResult{
				Success:         false,
				ExitCode:        nil,
				Stdout:          stdout.String(),
				Stderr:          stderr.String(),
				RuntimeSec:      runtimeSec,
				KilledByTimeout: true,
			}
		}

		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			return ExecResult{
				Success:    false,
				ExitCode:   &code,
				Stdout:     stdout.String(),
				Stderr:     stderr.String(),
				RuntimeSec: runtimeSec,
			}
		}

		// Spawn error: binary missing, fork failure, permission denied, etc.
		code := -1
		return ExecResult{
			Success:    false,
			ExitCode:   &code,
			Stdout:     stdout.String(),
			Stderr:     err.Error(),
			RuntimeSec: 0,
		}
	}

	code := 0
	return ExecResult{
		Success:    true,
		ExitCode:   &code,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		RuntimeSec: runtimeSec,
	}
}
