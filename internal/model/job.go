// Package model defines the job queue's core data types.
package model

import (
	"fmt"
	"time"
)

// JobState is a closed enumeration of the states a Job can occupy.
// Raw strings never cross the store boundary in either direction without
// going through ParseJobState or String.
type JobState string

const (
	StatePending    JobState = "pending"
	StateProcessing JobState = "processing"
	StateCompleted  JobState = "completed"
	StateDead       JobState = "dead"
)

// ParseJobState validates a raw string against the closed set of states.
func ParseJobState(s string) (JobState, error) {
	switch JobState(s) {
	case StatePending, StateProcessing, StateCompleted, StateDead:
		return JobState(s), nil
	default:
		return "", fmt.Errorf("unknown job state %q", s)
	}
}

func (s JobState) String() string {
	return string(s)
}

// Job is the unit of work tracked by the queue. Trace fields reflect only
// the most recent execution attempt and are nil until the job has run once.
type Job struct {
	ID                 string
	Command            string
	ReplayableCommand  string
	State              JobState
	Attempts           int
	MaxRetries         int
	RunAfter           time.Time
	TimeoutSec         int
	Priority           int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	LastError          *string
	Stdout             *string
	Stderr             *string
	ExitCode           *int
	RuntimeSec         *int
	TraceCreatedAt     *time.Time
}

// Trace is the captured result of a job's most recent execution attempt.
type Trace struct {
	Stdout         string
	Stderr         string
	ExitCode       *int
	RuntimeSec     int
	TraceCreatedAt time.Time
}
