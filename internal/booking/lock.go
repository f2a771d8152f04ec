package booking

import (
	"context"
	"sync"
)

// eventLocks hands out one binary semaphore per event ID.  Seats of
// different events are fully independent, so bookings for different
// events never contend; bookings for the same event serialize on its
// semaphore for the full validate+commit sequence.
//
// Semaphores are created lazily and kept for the lifetime of the
// process; the map grows with the number of distinct events booked,
// which is bounded by the events table.
type eventLocks struct {
	mu   sync.Mutex
	sems map[uint64]chan struct{}
}

func newEventLocks() *eventLocks {
	return &eventLocks{sems: make(map[uint64]chan struct{})}
}

// acquire blocks until the event's semaphore is obtained or the
// context expires.  On success it returns a release function that must
// be called exactly once.  On expiry it returns ErrLockTimeout so the
// caller can surface a retryable busy signal instead of blocking
// indefinitely.
func (l *eventLocks) acquire(ctx context.Context, eventID uint64) (func(), error) {
	l.mu.Lock()
	sem, ok := l.sems[eventID]
	if !ok {
		sem = make(chan struct{}, 1)
		l.sems[eventID] = sem
	}
	l.mu.Unlock()

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ErrLockTimeout
	}
}
