package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/booking"
	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestEventSeatsReturnsFullMap(t *testing.T) {
	store := newFakeEvents()
	store.addEvent(t, 1, "Launch Night", []model.SectionSpec{
		{Name: "Gold", Rows: 1, SeatsPerRow: 2},
		{Name: "Silver", Rows: 1, SeatsPerRow: 1},
	})
	attendee := NewAttendeeHandler(booking.New(store), store)
	public := NewPublicHandler(attendee.Coord)

	rec := bookRequest(t, attendee.BookSeats, http.MethodPost, "/v1/events/1/book",
		`{"seat_ids":["gold-A1"]}`, float64(7), map[string]string{"id": "1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = bookRequest(t, public.EventSeats, http.MethodGet, "/v1/events/1/seats", "",
		nil, map[string]string{"id": "1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	seats, ok := body["seats"].([]interface{})
	require.True(t, ok)
	require.Len(t, seats, 3)

	first, ok := seats[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "gold-A1", first["id"])
	assert.Equal(t, "gold", first["section"])
	assert.Equal(t, "A", first["row"])
	assert.Equal(t, float64(1), first["column"])
	assert.Equal(t, true, first["occupied"])

	// Holder identity must not leak through the public map.
	_, exposed := first["attendee_id"]
	assert.False(t, exposed)

	last, ok := seats[2].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "silver-A1", last["id"])
	assert.Equal(t, false, last["occupied"])
}

func TestEventSeatsNotFound(t *testing.T) {
	store := newFakeEvents()
	public := NewPublicHandler(booking.New(store))

	rec := bookRequest(t, public.EventSeats, http.MethodGet, "/v1/events/5/seats", "",
		nil, map[string]string{"id": "5"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventSeatsInvalidID(t *testing.T) {
	store := newFakeEvents()
	public := NewPublicHandler(booking.New(store))

	rec := bookRequest(t, public.EventSeats, http.MethodGet, "/v1/events/abc/seats", "",
		nil, map[string]string{"id": "abc"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
