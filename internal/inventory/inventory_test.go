package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/layout"
	"github.com/iliyamo/event-ticketing/internal/model"
)

func uintPtr(v uint64) *uint64 { return &v }

func testSeats(t *testing.T) []model.Seat {
	t.Helper()
	seats, err := layout.Generate([]model.SectionSpec{
		{Name: "Gold", Rows: 2, SeatsPerRow: 3},
		{Name: "Silver", Rows: 1, SeatsPerRow: 4},
	})
	require.NoError(t, err)
	return seats
}

func TestFind(t *testing.T) {
	inv, err := New(testSeats(t))
	require.NoError(t, err)
	require.Equal(t, 10, inv.Len())

	s, err := inv.Find("gold-B2")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Row)
	assert.Equal(t, 2, s.Column)
	assert.Equal(t, "gold", s.SectionType)

	_, err = inv.Find("gold-C1")
	assert.ErrorIs(t, err, ErrSeatNotFound)
	_, err = inv.Find("")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestOccupiedBy(t *testing.T) {
	seats := testSeats(t)
	seats[0].Occupied = true
	seats[0].AttendeeID = uintPtr(7)
	seats[4].Occupied = true
	seats[4].AttendeeID = uintPtr(7)
	seats[5].Occupied = true
	seats[5].AttendeeID = uintPtr(9)

	inv, err := New(seats)
	require.NoError(t, err)

	held := inv.OccupiedBy(7)
	require.Len(t, held, 2)
	assert.Equal(t, "gold-A1", held[0].ID)
	assert.Equal(t, "gold-B2", held[1].ID)
	assert.Equal(t, 2, inv.CountOccupiedBy(7))
	assert.Equal(t, 1, inv.CountOccupiedBy(9))
	assert.Empty(t, inv.OccupiedBy(12))
	assert.Zero(t, inv.CountOccupiedBy(12))
}

func TestNewRejectsDuplicates(t *testing.T) {
	seats := []model.Seat{
		{ID: "gold-A1", Row: 1, Column: 1, SectionType: "gold"},
		{ID: "gold-A1", Row: 1, Column: 2, SectionType: "gold"},
	}
	_, err := New(seats)
	require.ErrorIs(t, err, ErrDuplicateSeat)
}
