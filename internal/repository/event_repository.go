package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventRecord mirrors the 'events' table.  The seating layout lives in
// the event_seats table and is loaded separately via LoadSeats.
type EventRecord struct {
	ID          uint64       `json:"id"`
	OrganizerID uint64       `json:"organizer_id"`
	VenueID     uint64       `json:"venue_id"`
	Title       string       `json:"title"`
	StartsAt    sql.NullTime `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// EventRepo provides persistence for events and their seating layouts.
// The seat mutation methods are conditional writes: they only flip
// seats whose current occupancy matches the expected prior state, and
// they roll the whole batch back when any single seat misses.  This is
// the compare-and-swap primitive the booking coordinator commits
// through.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// CreateWithSeats inserts the event row and its full seating layout in
// one transaction.  The seq column records generation order so that
// LoadSeats can return seats exactly as the generator emitted them.
// On success the event's ID is populated.
func (r *EventRepo) CreateWithSeats(ctx context.Context, ev *EventRecord, seats []model.Seat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (organizer_id, venue_id, title, starts_at) VALUES (?, ?, ?, ?)`,
		ev.OrganizerID, ev.VenueID, ev.Title, ev.StartsAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)

	if len(seats) > 0 {
		query := `INSERT INTO event_seats (event_id, seat_id, section_type, row_num, col_num, seq) VALUES `
		args := make([]interface{}, 0, len(seats)*6)
		for i, s := range seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?)"
			args = append(args, ev.ID, s.ID, s.SectionType, s.Row, s.Column, i)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID retrieves an event by its primary key.  Returns
// ErrEventNotFound when no such event exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*EventRecord, error) {
	const q = `SELECT id, organizer_id, venue_id, title, starts_at, created_at, updated_at
	           FROM events WHERE id = ?`
	var ev EventRecord
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&ev.ID, &ev.OrganizerID, &ev.VenueID, &ev.Title, &ev.StartsAt, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// ListByOrganizer returns all events created by an organizer, newest
// first, without their seat layouts.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]EventRecord, error) {
	const q = `SELECT id, organizer_id, venue_id, title, starts_at, created_at, updated_at
	           FROM events WHERE organizer_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]EventRecord, 0)
	for rows.Next() {
		var ev EventRecord
		if err := rows.Scan(&ev.ID, &ev.OrganizerID, &ev.VenueID, &ev.Title, &ev.StartsAt, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// LoadSeats returns the full seating layout of an event in generation
// order.  Returns ErrEventNotFound when the event does not exist, so
// callers can distinguish a missing event from an empty layout.
func (r *EventRepo) LoadSeats(ctx context.Context, eventID uint64) ([]model.Seat, error) {
	var exists uint64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM events WHERE id = ?`, eventID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	const q = `SELECT seat_id, section_type, row_num, col_num, occupied, attendee_id
	           FROM event_seats WHERE event_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		var attendee sql.NullInt64
		if err := rows.Scan(&s.ID, &s.SectionType, &s.Row, &s.Column, &s.Occupied, &attendee); err != nil {
			return nil, err
		}
		if attendee.Valid {
			aid := uint64(attendee.Int64)
			s.AttendeeID = &aid
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatsByAttendee returns the seats an attendee currently occupies in
// an event, in layout order.
func (r *EventRepo) SeatsByAttendee(ctx context.Context, eventID, attendeeID uint64) ([]model.Seat, error) {
	const q = `SELECT seat_id, section_type, row_num, col_num, occupied, attendee_id
	           FROM event_seats WHERE event_id = ? AND occupied = 1 AND attendee_id = ?
	           ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, eventID, attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		var attendee sql.NullInt64
		if err := rows.Scan(&s.ID, &s.SectionType, &s.Row, &s.Column, &s.Occupied, &attendee); err != nil {
			return nil, err
		}
		if attendee.Valid {
			aid := uint64(attendee.Int64)
			s.AttendeeID = &aid
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// CompareAndSwapSeats transitions every requested seat from free to
// occupied-by-attendee inside one transaction.  The UPDATE only
// matches rows that are still free; when the affected row count falls
// short of the request, some seat was taken in the meantime and the
// transaction is rolled back, leaving every seat untouched.  Returns
// ErrSeatTaken in that case.
func (r *EventRepo) CompareAndSwapSeats(ctx context.Context, eventID, attendeeID uint64, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	placeholders := make([]string, 0, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs)+2)
	args = append(args, attendeeID, eventID)
	for _, id := range seatIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `UPDATE event_seats
	          SET occupied = 1, attendee_id = ?, updated_at = CURRENT_TIMESTAMP
	          WHERE event_id = ? AND seat_id IN (` + strings.Join(placeholders, ",") + `) AND occupied = 0`
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(seatIDs)) {
		return ErrSeatTaken
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReleaseSeats transitions every requested seat from occupied back to
// free, but only for seats currently held by the given attendee.  Like
// CompareAndSwapSeats, the batch is all-or-nothing: a short row count
// rolls everything back and returns ErrSeatNotHeld.
func (r *EventRepo) ReleaseSeats(ctx context.Context, eventID, attendeeID uint64, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	placeholders := make([]string, 0, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs)+2)
	args = append(args, eventID, attendeeID)
	for _, id := range seatIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `UPDATE event_seats
	          SET occupied = 0, attendee_id = NULL, updated_at = CURRENT_TIMESTAMP
	          WHERE event_id = ? AND attendee_id = ? AND occupied = 1
	            AND seat_id IN (` + strings.Join(placeholders, ",") + `)`
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(len(seatIDs)) {
		return ErrSeatNotHeld
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DeleteByIDAndOrganizer removes an event owned by the organizer.  The
// event_seats rows go with it via the FK cascade, destroying the
// layout as required.  Returns ErrEventNotFound when nothing matched.
func (r *EventRepo) DeleteByIDAndOrganizer(ctx context.Context, id, organizerID uint64) error {
	const q = `DELETE FROM events WHERE id = ? AND organizer_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, organizerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}
