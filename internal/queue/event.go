// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatsBookedEvent is published after a batch of seats is committed for an
// attendee.  It carries enough context for downstream consumers to log or
// notify without querying the primary database.
type SeatsBookedEvent struct {
	EventID    uint64   `json:"event_id"`
	EventTitle string   `json:"event_title"`
	AttendeeID uint64   `json:"attendee_id"`
	SeatIDs    []string `json:"seats"`
	BookedAt   string   `json:"booked_at"`
}
