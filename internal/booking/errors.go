package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the validation failures that carry no offending
// seat IDs.  Handlers translate these into 4xx responses.
var (
	// ErrEventNotFound means the booking referenced a non-existent event.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidInput means the request had no seat IDs or repeated one.
	ErrInvalidInput = errors.New("invalid booking request")
	// ErrCapacityExceeded means the attendee would exceed the per-event
	// seat cap.
	ErrCapacityExceeded = errors.New("attendee seat cap exceeded")
	// ErrLockTimeout means the per-event lock could not be acquired
	// within the configured wait.  The caller may retry; the
	// coordinator never retries on its own.
	ErrLockTimeout = errors.New("timed out waiting for event lock")
)

// InvalidSeatError reports request seat IDs that do not exist in the
// event's layout.  All offending IDs are collected before returning so
// the caller sees the complete set, not just the first.
type InvalidSeatError struct {
	SeatIDs []string
}

func (e *InvalidSeatError) Error() string {
	return fmt.Sprintf("unknown seats: %s", strings.Join(e.SeatIDs, ", "))
}

// ConflictError reports request seats that are already occupied.  A
// conflict aborts the whole batch; no seat in the request is modified.
type ConflictError struct {
	SeatIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seats already occupied: %s", strings.Join(e.SeatIDs, ", "))
}

// PersistenceError wraps a failure of the durable store.  It is
// surfaced as retryable; the coordinator performs no hidden retries.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
