// Package inventory provides an indexed view over one event's seating
// layout.  It answers seat lookups and occupancy queries without
// rescanning the layout for every request, which matters once venues
// grow to thousands of seats.
package inventory

import (
	"errors"
	"fmt"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ErrSeatNotFound is returned by Find when no seat with the given ID
// exists in the layout.
var ErrSeatNotFound = errors.New("seat not found")

// ErrDuplicateSeat is returned by New when the supplied layout
// contains two seats with the same ID.  Layouts produced by the
// generator never do; this guards against corrupted stored state.
var ErrDuplicateSeat = errors.New("duplicate seat id in inventory")

// Inventory wraps the seating layout of a single event.  It is a
// read-only snapshot: bookings go through the coordinator, which
// reloads state under the event lock before committing.
type Inventory struct {
	seats []model.Seat
	byID  map[string]int // seat ID -> index into seats
}

// New builds an Inventory over the given seats.  The slice is kept by
// reference and must not be mutated afterwards.
func New(seats []model.Seat) (*Inventory, error) {
	byID := make(map[string]int, len(seats))
	for i, s := range seats {
		if _, ok := byID[s.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, s.ID)
		}
		byID[s.ID] = i
	}
	return &Inventory{seats: seats, byID: byID}, nil
}

// Len returns the number of seats in the layout.
func (inv *Inventory) Len() int { return len(inv.seats) }

// Find returns the seat with the given ID or ErrSeatNotFound.
func (inv *Inventory) Find(seatID string) (model.Seat, error) {
	i, ok := inv.byID[seatID]
	if !ok {
		return model.Seat{}, ErrSeatNotFound
	}
	return inv.seats[i], nil
}

// OccupiedBy returns the seats currently held by the given attendee,
// in layout order.
func (inv *Inventory) OccupiedBy(attendeeID uint64) []model.Seat {
	var held []model.Seat
	for _, s := range inv.seats {
		if s.Occupied && s.AttendeeID != nil && *s.AttendeeID == attendeeID {
			held = append(held, s)
		}
	}
	return held
}

// CountOccupiedBy returns how many seats the given attendee holds.
// Used for enforcing the per-event seat cap.
func (inv *Inventory) CountOccupiedBy(attendeeID uint64) int {
	n := 0
	for _, s := range inv.seats {
		if s.Occupied && s.AttendeeID != nil && *s.AttendeeID == attendeeID {
			n++
		}
	}
	return n
}
