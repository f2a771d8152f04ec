// Package booking commits seat reservations against an event's
// seating layout without double-selling a seat.  All reads and writes
// of seat occupancy go through the Coordinator: it serializes the full
// validate+commit sequence per event behind a keyed lock, and commits
// through the store's conditional write so that even rows changed
// outside this process cannot produce a lost update.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/event-ticketing/internal/inventory"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// MaxSeatsPerAttendee is the cap on occupied seats one attendee may
// hold in a single event, enforced at commit time.
const MaxSeatsPerAttendee = 6

// DefaultLockWait bounds how long Book and Release wait for the
// per-event lock when the caller's context carries no deadline.
const DefaultLockWait = 3 * time.Second

// EventStore is the durable storage the coordinator commits through.
// LoadSeats must return repository.ErrEventNotFound for unknown
// events.  CompareAndSwapSeats and ReleaseSeats must be atomic
// all-or-nothing batch writes, failing with repository.ErrSeatTaken or
// repository.ErrSeatNotHeld when any seat misses its expected state.
// *repository.EventRepo satisfies this interface.
type EventStore interface {
	LoadSeats(ctx context.Context, eventID uint64) ([]model.Seat, error)
	CompareAndSwapSeats(ctx context.Context, eventID, attendeeID uint64, seatIDs []string) error
	ReleaseSeats(ctx context.Context, eventID, attendeeID uint64, seatIDs []string) error
}

// Result describes a committed booking or release.
type Result struct {
	EventID    uint64   `json:"event_id"`
	AttendeeID uint64   `json:"attendee_id"`
	SeatIDs    []string `json:"seat_ids"`
}

// Coordinator validates and atomically commits booking requests.  It
// is safe for concurrent use by any number of request handlers.
type Coordinator struct {
	store    EventStore
	locks    *eventLocks
	lockWait time.Duration
}

// New constructs a Coordinator over the given store.
func New(store EventStore) *Coordinator {
	if store == nil {
		panic("nil store passed to booking.New")
	}
	return &Coordinator{
		store:    store,
		locks:    newEventLocks(),
		lockWait: DefaultLockWait,
	}
}

// NewWithLockWait constructs a Coordinator with a custom bound on lock
// acquisition.  Used by tests to keep contention cases fast.
func NewWithLockWait(store EventStore, wait time.Duration) *Coordinator {
	c := New(store)
	if wait > 0 {
		c.lockWait = wait
	}
	return c
}

// Book reserves the given seats for the attendee.  The operation is
// all-or-nothing: every requested seat transitions to occupied or none
// does.  Validation failures are reported with the specific offending
// seat IDs where applicable.  A request cancelled before commit leaves
// no trace; once committed the booking is final.
func (c *Coordinator) Book(ctx context.Context, eventID, attendeeID uint64, seatIDs []string) (*Result, error) {
	release, err := c.acquireEventLock(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer release()

	inv, err := c.loadInventory(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// A missing event outranks a malformed batch, so the request shape
	// is judged only once the event is known to exist.
	ids, err := normalizeSeatIDs(seatIDs)
	if err != nil {
		return nil, err
	}

	// Resolve every requested ID before judging occupancy so the
	// caller learns about all unknown seats at once.
	var unknown []string
	seats := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		s, findErr := inv.Find(id)
		if findErr != nil {
			unknown = append(unknown, id)
			continue
		}
		seats = append(seats, s)
	}
	if len(unknown) > 0 {
		return nil, &InvalidSeatError{SeatIDs: unknown}
	}

	if inv.CountOccupiedBy(attendeeID)+len(ids) > MaxSeatsPerAttendee {
		return nil, ErrCapacityExceeded
	}

	var taken []string
	for _, s := range seats {
		if s.Occupied {
			taken = append(taken, s.ID)
		}
	}
	if len(taken) > 0 {
		return nil, &ConflictError{SeatIDs: taken}
	}

	// The caller may have gone away while we validated; committing for
	// a cancelled request would make the cancellation observable.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.store.CompareAndSwapSeats(ctx, eventID, attendeeID, ids); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			// The store saw occupancy we did not: a writer outside
			// this process changed rows between load and commit.  The
			// batch was rolled back, so report the whole request as
			// conflicted.
			return nil, &ConflictError{SeatIDs: ids}
		}
		return nil, &PersistenceError{Op: "book", Err: err}
	}
	return &Result{EventID: eventID, AttendeeID: attendeeID, SeatIDs: ids}, nil
}

// Release frees seats currently held by the attendee.  It runs under
// the same per-event lock discipline as Book and is equally
// all-or-nothing: releasing a batch where one seat is not held by the
// attendee frees nothing.
func (c *Coordinator) Release(ctx context.Context, eventID, attendeeID uint64, seatIDs []string) (*Result, error) {
	release, err := c.acquireEventLock(ctx, eventID)
	if err != nil {
		return nil, err
	}
	defer release()

	inv, err := c.loadInventory(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Same ordering as Book: a missing event outranks a malformed batch.
	ids, err := normalizeSeatIDs(seatIDs)
	if err != nil {
		return nil, err
	}

	var unknown, notHeld []string
	for _, id := range ids {
		s, findErr := inv.Find(id)
		if findErr != nil {
			unknown = append(unknown, id)
			continue
		}
		if !s.Occupied || s.AttendeeID == nil || *s.AttendeeID != attendeeID {
			notHeld = append(notHeld, id)
		}
	}
	if len(unknown) > 0 {
		return nil, &InvalidSeatError{SeatIDs: unknown}
	}
	if len(notHeld) > 0 {
		return nil, &ConflictError{SeatIDs: notHeld}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.store.ReleaseSeats(ctx, eventID, attendeeID, ids); err != nil {
		if errors.Is(err, repository.ErrSeatNotHeld) {
			return nil, &ConflictError{SeatIDs: ids}
		}
		return nil, &PersistenceError{Op: "release", Err: err}
	}
	return &Result{EventID: eventID, AttendeeID: attendeeID, SeatIDs: ids}, nil
}

// SeatMap returns the current layout for display.  It takes no lock:
// stale views are acceptable for rendering, only the commit path needs
// strong consistency.
func (c *Coordinator) SeatMap(ctx context.Context, eventID uint64) ([]model.Seat, error) {
	seats, err := c.store.LoadSeats(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, &PersistenceError{Op: "load seats", Err: err}
	}
	return seats, nil
}

// acquireEventLock obtains the per-event lock with a bounded wait.
// When the caller's context has no deadline, DefaultLockWait (or the
// configured override) applies to the acquisition only.
func (c *Coordinator) acquireEventLock(ctx context.Context, eventID uint64) (func(), error) {
	acqCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, c.lockWait)
		defer cancel()
	}
	return c.locks.acquire(acqCtx, eventID)
}

func (c *Coordinator) loadInventory(ctx context.Context, eventID uint64) (*inventory.Inventory, error) {
	seats, err := c.store.LoadSeats(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, &PersistenceError{Op: "load seats", Err: err}
	}
	inv, err := inventory.New(seats)
	if err != nil {
		return nil, &PersistenceError{Op: "index seats", Err: err}
	}
	return inv, nil
}

// normalizeSeatIDs validates the request shape: at least one seat, no
// duplicates.  The returned slice preserves request order.
func normalizeSeatIDs(seatIDs []string) ([]string, error) {
	if len(seatIDs) == 0 {
		return nil, ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(seatIDs))
	ids := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		if id == "" {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[id]; ok {
			return nil, ErrInvalidInput
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
