// Package queueerr holds the domain-level sentinel errors shared between
// the store and the dispatcher, kept in their own leaf package so neither
// side has to import the other to check an error kind.
package queueerr

import "errors"

var (
	// ErrJobNotFound is returned when a referenced job id doesn't exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrNotDead is returned when a DLQ-retry is attempted on a job that
	// isn't in the dead state.
	ErrNotDead = errors.New("job is not dead")
)
