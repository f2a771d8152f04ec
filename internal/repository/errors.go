// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers to
// distinguish between different failure scenarios: ErrEventNotFound
// maps to a 404 while ErrSeatTaken signals that a conditional seat
// update found a seat already flipped.  Ownership violations surface
// as not-found because every organizer query is scoped to the caller.
package repository

import "errors"

// ErrEventNotFound is returned when an event lookup yields no rows.
var ErrEventNotFound = errors.New("event not found")

// ErrVenueNotFound is returned when a venue lookup yields no rows.
var ErrVenueNotFound = errors.New("venue not found")

// ErrSeatTaken is returned by CompareAndSwapSeats when at least one
// requested seat was not in the expected free state.  The whole batch
// is rolled back before this error is returned.
var ErrSeatTaken = errors.New("seat already taken")

// ErrSeatNotHeld is returned by ReleaseSeats when at least one seat is
// not currently occupied by the releasing attendee.
var ErrSeatNotHeld = errors.New("seat not held by attendee")
