package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Venue mirrors the 'venues' table.  Venues carry no seat data; each
// event generates its own layout at creation time.
type Venue struct {
	ID          uint64         `json:"id"`
	OrganizerID uint64         `json:"organizer_id"`
	Name        string         `json:"name"`
	Address     sql.NullString `json:"-"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// VenueRepo provides CRUD operations for venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// Create inserts a venue and populates its generated ID.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
	const q = `INSERT INTO venues (organizer_id, name, address) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.OrganizerID, v.Name, v.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// GetByIDAndOrganizer retrieves a venue by ID while enforcing
// ownership.  Returns ErrVenueNotFound when the venue does not exist
// or belongs to another organizer.
func (r *VenueRepo) GetByIDAndOrganizer(ctx context.Context, id, organizerID uint64) (*Venue, error) {
	const q = `SELECT id, organizer_id, name, address, is_active, created_at, updated_at
	           FROM venues WHERE id = ? AND organizer_id = ?`
	var v Venue
	err := r.db.QueryRowContext(ctx, q, id, organizerID).
		Scan(&v.ID, &v.OrganizerID, &v.Name, &v.Address, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByOrganizer returns all venues belonging to an organizer,
// newest first.
func (r *VenueRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]Venue, error) {
	const q = `SELECT id, organizer_id, name, address, is_active, created_at, updated_at
	           FROM venues WHERE organizer_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]Venue, 0)
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.OrganizerID, &v.Name, &v.Address, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

// DeleteByIDAndOrganizer removes a venue owned by the organizer.
// Returns ErrVenueNotFound if nothing was deleted.
func (r *VenueRepo) DeleteByIDAndOrganizer(ctx context.Context, id, organizerID uint64) error {
	const q = `DELETE FROM venues WHERE id = ? AND organizer_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, organizerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}
