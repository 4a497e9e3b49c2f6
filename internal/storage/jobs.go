package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pranavk/queuectl/internal/model"
	"github.com/pranavk/queuectl/internal/queueerr"
)

// Enqueue inserts a new pending job and returns its id.
func (s *Store) Enqueue(command string, maxRetries, delaySec, timeoutSec, priority int) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	runAfter := now.Add(time.Duration(delaySec) * time.Second)

	const stmt = `
	INSERT INTO jobs (
		id, command, replayable_command, state, attempts, max_retries,
		run_after, timeout_sec, priority, created_at, updated_at
	) VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?)`

	_, err := s.Db.Exec(stmt,
		id, command, command, model.StatePending, maxRetries,
		runAfter, timeoutSec, priority, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	return id, nil
}

// PickAndLock atomically claims the highest-priority, oldest eligible
// pending job and transitions it to processing in a single statement, so a
// concurrent loser observes zero rows updated instead of racing on a
// separate SELECT.
func (s *Store) PickAndLock() (*model.Job, error) {
	now := time.Now()

	const stmt = `
	UPDATE jobs SET state = ?, updated_at = ?
	WHERE id = (
		SELECT id FROM jobs
		WHERE state = ? AND run_after <= ?
		ORDER BY priority DESC, created_at ASC
		LIMIT 1
	)
	RETURNING ` + jobColumns

	row := s.Db.QueryRow(stmt, model.StateProcessing, now, model.StatePending, now)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pick and lock: %w", err)
	}
	return job, nil
}

// FinalizeOutcome is the post-execution write applied by apply_outcome.
type FinalizeOutcome struct {
	State     model.JobState
	Attempts  int
	RunAfter  time.Time
	LastError *string
}

// Finalize applies the state transition computed by the worker loop as a
// single write, separate from trace persistence.
func (s *Store) Finalize(id string, o FinalizeOutcome) error {
	const stmt = `
	UPDATE jobs SET state = ?, attempts = ?, run_after = ?, last_error = ?, updated_at = ?
	WHERE id = ?`
	_, err := s.Db.Exec(stmt, o.State, o.Attempts, o.RunAfter, o.LastError, time.Now(), id)
	if err != nil {
		return fmt.Errorf("finalize job %s: %w", id, err)
	}
	return nil
}

// PersistTrace writes the most recent execution's captured output. It is a
// separate write from Finalize but happens before the worker loop moves on.
func (s *Store) PersistTrace(id string, t model.Trace) error {
	const stmt = `
	UPDATE jobs SET stdout = ?, stderr = ?, exit_code = ?, runtime_sec = ?, trace_created_at = ?
	WHERE id = ?`
	_, err := s.Db.Exec(stmt, t.Stdout, t.Stderr, t.ExitCode, t.RuntimeSec, t.TraceCreatedAt, id)
	if err != nil {
		return fmt.Errorf("persist trace %s: %w", id, err)
	}
	return nil
}

// Get returns a single job by id, or nil if it doesn't exist.
func (s *Store) Get(id string) (*model.Job, error) {
	row := s.Db.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

// List returns jobs, most recently created first, optionally filtered by
// state.
func (s *Store) List(state *model.JobState) ([]model.Job, error) {
	var rows *sql.Rows
	var err error
	if state != nil {
		rows, err = s.Db.Query(`SELECT `+jobColumns+` FROM jobs WHERE state = ? ORDER BY created_at DESC`, *state)
	} else {
		rows, err = s.Db.Query(`SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// CountByState returns the number of jobs in each observed state.
func (s *Store) CountByState() (map[string]int, error) {
	rows, err := s.Db.Query(`SELECT state, COUNT(*) FROM jobs GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("count by state: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		counts[state] = n
	}
	return counts, rows.Err()
}

// ReclaimStale returns processing jobs abandoned past lockTimeout back to
// pending, and reports how many rows were reclaimed.
func (s *Store) ReclaimStale(lockTimeout time.Duration) (int, error) {
	now := time.Now()
	cutoff := now.Add(-lockTimeout)

	const stmt = `
	UPDATE jobs SET state = ?, run_after = ?
	WHERE state = ? AND updated_at <= ?`

	res, err := s.Db.Exec(stmt, model.StatePending, now, model.StateProcessing, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reclaim stale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// DLQRetry resurrects a dead job back to pending, resetting its attempt
// counter. It fails if the job doesn't exist or isn't dead.
func (s *Store) DLQRetry(id string) error {
	job, err := s.Get(id)
	if err != nil {
		return err
	}
	if job == nil {
		return queueerr.ErrJobNotFound
	}
	if job.State != model.StateDead {
		return queueerr.ErrNotDead
	}

	const stmt = `
	UPDATE jobs SET state = ?, attempts = 0, run_after = ?, last_error = NULL, updated_at = ?
	WHERE id = ? AND state = ?`
	now := time.Now()
	res, err := s.Db.Exec(stmt, model.StatePending, now, now, id, model.StateDead)
	if err != nil {
		return fmt.Errorf("dlq retry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Lost a race with another retry/finalize between Get and UPDATE.
		return queueerr.ErrNotDead
	}
	return nil
}

const jobColumns = `
	id, command, replayable_command, state, attempts, max_retries,
	run_after, timeout_sec, priority, created_at, updated_at,
	last_error, stdout, stderr, exit_code, runtime_sec, trace_created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*model.Job, error) {
	var j model.Job
	var state string
	var lastError, stdout, stderr sql.NullString
	var exitCode, runtimeSec sql.NullInt64
	var traceCreatedAt sql.NullTime

	err := row.Scan(
		&j.ID, &j.Command, &j.ReplayableCommand, &state, &j.Attempts, &j.MaxRetries,
		&j.RunAfter, &j.TimeoutSec, &j.Priority, &j.CreatedAt, &j.UpdatedAt,
		&lastError, &stdout, &stderr, &exitCode, &runtimeSec, &traceCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := model.ParseJobState(state)
	if err != nil {
		return nil, err
	}
	j.State = parsed

	if lastError.Valid {
		j.LastError = &lastError.String
	}
	if stdout.Valid {
		j.Stdout = &stdout.String
	}
	if stderr.Valid {
		j.Stderr = &stderr.String
	}
	if exitCode.Valid {
		v := int(exitCode.Int64)
		j.ExitCode = &v
	}
	if runtimeSec.Valid {
		v := int(runtimeSec.Int64)
		j.RuntimeSec = &v
	}
	if traceCreatedAt.Valid {
		j.TraceCreatedAt = &traceCreatedAt.Time
	}

	return &j, nil
}
