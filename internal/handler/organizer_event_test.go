package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// fakeOrganizerStores backs both VenueStore and EventCatalog for
// handler tests, handing out sequential IDs on create.
type fakeOrganizerStores struct {
	venues     map[uint64]repository.Venue
	events     map[uint64]repository.EventRecord
	eventSeats map[uint64][]model.Seat
	nextID     uint64
}

func newFakeOrganizerStores() *fakeOrganizerStores {
	return &fakeOrganizerStores{
		venues:     map[uint64]repository.Venue{},
		events:     map[uint64]repository.EventRecord{},
		eventSeats: map[uint64][]model.Seat{},
		nextID:     1,
	}
}

func (f *fakeOrganizerStores) Create(_ context.Context, v *repository.Venue) error {
	v.ID = f.nextID
	f.nextID++
	f.venues[v.ID] = *v
	return nil
}

func (f *fakeOrganizerStores) GetByIDAndOrganizer(_ context.Context, id, organizerID uint64) (*repository.Venue, error) {
	v, ok := f.venues[id]
	if !ok || v.OrganizerID != organizerID {
		return nil, repository.ErrVenueNotFound
	}
	return &v, nil
}

func (f *fakeOrganizerStores) ListByOrganizer(_ context.Context, organizerID uint64) ([]repository.Venue, error) {
	var out []repository.Venue
	for _, v := range f.venues {
		if v.OrganizerID == organizerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeOrganizerStores) DeleteByIDAndOrganizer(_ context.Context, id, organizerID uint64) error {
	v, ok := f.venues[id]
	if !ok || v.OrganizerID != organizerID {
		return repository.ErrVenueNotFound
	}
	delete(f.venues, id)
	return nil
}

func (f *fakeOrganizerStores) CreateWithSeats(_ context.Context, ev *repository.EventRecord, seats []model.Seat) error {
	ev.ID = f.nextID
	f.nextID++
	f.events[ev.ID] = *ev
	f.eventSeats[ev.ID] = seats
	return nil
}

func (f *fakeOrganizerStores) ListEventsByOrganizer(_ context.Context, organizerID uint64) ([]repository.EventRecord, error) {
	var out []repository.EventRecord
	for _, ev := range f.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeOrganizerStores) DeleteEventByIDAndOrganizer(_ context.Context, id, organizerID uint64) error {
	ev, ok := f.events[id]
	if !ok || ev.OrganizerID != organizerID {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)
	delete(f.eventSeats, id)
	return nil
}

// eventCatalogAdapter renames the fake's event methods onto the
// EventCatalog interface, which shares method names with VenueStore.
type eventCatalogAdapter struct{ f *fakeOrganizerStores }

func (a eventCatalogAdapter) CreateWithSeats(ctx context.Context, ev *repository.EventRecord, seats []model.Seat) error {
	return a.f.CreateWithSeats(ctx, ev, seats)
}

func (a eventCatalogAdapter) ListByOrganizer(ctx context.Context, organizerID uint64) ([]repository.EventRecord, error) {
	return a.f.ListEventsByOrganizer(ctx, organizerID)
}

func (a eventCatalogAdapter) DeleteByIDAndOrganizer(ctx context.Context, id, organizerID uint64) error {
	return a.f.DeleteEventByIDAndOrganizer(ctx, id, organizerID)
}

func newOrganizerRig(t *testing.T) (*OrganizerHandler, *fakeOrganizerStores) {
	t.Helper()
	f := newFakeOrganizerStores()
	f.venues[10] = repository.Venue{ID: 10, OrganizerID: 5, Name: "Main Hall", IsActive: true}
	return NewOrganizerHandler(f, eventCatalogAdapter{f}), f
}

func TestCreateEventReturnsOrderedSeats(t *testing.T) {
	h, store := newOrganizerRig(t)

	rec := bookRequest(t, h.CreateEvent, http.MethodPost, "/v1/events",
		`{"venue_id":10,"title":"Launch Night","sections":[{"name":"Gold","rows":1,"seats_per_row":2},{"name":"Silver","rows":1,"seats_per_row":1}]}`,
		float64(5), nil, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["seat_count"])

	seats, ok := body["seats"].([]interface{})
	require.True(t, ok, "201 body must carry the generated seat sequence")
	require.Len(t, seats, 3)

	var ids []string
	for _, raw := range seats {
		sv, ok := raw.(map[string]interface{})
		require.True(t, ok)
		ids = append(ids, sv["id"].(string))
		assert.Equal(t, false, sv["occupied"])
	}
	assert.Equal(t, []string{"gold-A1", "gold-A2", "silver-A1"}, ids)

	first, _ := seats[0].(map[string]interface{})
	assert.Equal(t, "gold", first["section"])
	assert.Equal(t, "A", first["row"])
	assert.Equal(t, float64(1), first["column"])

	// The persisted layout matches what the response showed.
	eventID := uint64(body["id"].(float64))
	require.Len(t, store.eventSeats[eventID], 3)
}

func TestCreateEventRejectsForeignVenue(t *testing.T) {
	h, _ := newOrganizerRig(t)

	rec := bookRequest(t, h.CreateEvent, http.MethodPost, "/v1/events",
		`{"venue_id":10,"title":"Launch Night","sections":[{"name":"Gold","rows":1,"seats_per_row":2}]}`,
		float64(6), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEventRejectsCollidingSections(t *testing.T) {
	h, _ := newOrganizerRig(t)

	rec := bookRequest(t, h.CreateEvent, http.MethodPost, "/v1/events",
		`{"venue_id":10,"title":"Launch Night","sections":[{"name":"Gold","rows":1,"seats_per_row":1},{"name":"GOLD","rows":1,"seats_per_row":1}]}`,
		float64(5), nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEventsOmitsSeatPayload(t *testing.T) {
	h, _ := newOrganizerRig(t)

	rec := bookRequest(t, h.CreateEvent, http.MethodPost, "/v1/events",
		`{"venue_id":10,"title":"Launch Night","sections":[{"name":"Gold","rows":2,"seats_per_row":3}]}`,
		float64(5), nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = bookRequest(t, h.ListEvents, http.MethodGet, "/v1/events", "",
		float64(5), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	events, ok := body["events"].([]interface{})
	require.True(t, ok)
	require.Len(t, events, 1)
	ev, _ := events[0].(map[string]interface{})
	_, hasSeats := ev["seats"]
	assert.False(t, hasSeats, "listing must stay lightweight")
}
