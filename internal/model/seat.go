package model

// Seat is a single bookable unit inside an event's seating layout.
// Seats are identified by a string ID that is unique within their
// event; the ID embeds the section prefix so that two sections can
// never produce colliding identifiers (e.g. "gold-A1" vs "silver-A1").
//
// Fields:
//
//	ID          – seat identifier, unique per event.
//	Row         – 1-based row number within the section.
//	Column      – 1-based position within the row.
//	SectionType – lowercased section label (e.g. "gold").
//	Occupied    – whether the seat has been booked.
//	AttendeeID  – holder of the seat; set if and only if Occupied.
type Seat struct {
	ID          string  `json:"id"`                    // event_seats.seat_id
	Row         int     `json:"row"`                   // event_seats.row_num
	Column      int     `json:"column"`                // event_seats.col_num
	SectionType string  `json:"section_type"`          // event_seats.section_type
	Occupied    bool    `json:"occupied"`              // event_seats.occupied
	AttendeeID  *uint64 `json:"attendee_id,omitempty"` // event_seats.attendee_id (nullable)
}

// SectionSpec describes one block of seats supplied by an organizer at
// event creation time.  Sections are processed in the order given and
// each expands into Rows × SeatsPerRow seats.  Zero rows or zero seats
// per row is allowed and simply contributes no seats.
type SectionSpec struct {
	Name        string `json:"name"`          // section label, e.g. "Gold"
	Rows        int    `json:"rows"`          // number of rows (>= 0)
	SeatsPerRow int    `json:"seats_per_row"` // seats in each row (>= 0)
}
