package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the draw pipeline
var (
	// ErrNoPendingIssue signals that countdown/draw was requested while
	// no issue is open; the scheduler treats it as "generation needed".
	ErrNoPendingIssue = errors.New("no pending issue")

	// ErrConcurrencyConflict signals a duplicate draw attempt. The
	// losing side resolves it as a no-op.
	ErrConcurrencyConflict = errors.New("issue already drawn")

	// ErrAnalysisTimeout signals that the outcome search exceeded its
	// budget. Recovered locally via the timeout fallback, never fatal.
	ErrAnalysisTimeout = errors.New("analysis timeout exceeded")
)

// ConfigurationError marks a missing or invalid operator configuration
// row (odds, lottery type). Fatal to that issue's draw and surfaced to
// the operator.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a commit failure after retries were exhausted
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
