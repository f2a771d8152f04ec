package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/layout"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

type createEventReq struct {
	VenueID  uint64              `json:"venue_id"`
	Title    string              `json:"title"`
	StartsAt *time.Time          `json:"starts_at"`
	Sections []model.SectionSpec `json:"sections"`
}

type eventResp struct {
	ID        uint64     `json:"id"`
	VenueID   uint64     `json:"venue_id"`
	Title     string     `json:"title"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	SeatCount int        `json:"seat_count,omitempty"`
	Seats     []seatView `json:"seats,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toEventResp(ev repository.EventRecord, seats []model.Seat) eventResp {
	out := eventResp{ID: ev.ID, VenueID: ev.VenueID, Title: ev.Title, SeatCount: len(seats), CreatedAt: ev.CreatedAt}
	if len(seats) > 0 {
		out.Seats = seatViews(seats)
	}
	if ev.StartsAt.Valid {
		t := ev.StartsAt.Time
		out.StartsAt = &t
	}
	return out
}

// CreateEvent handles POST /v1/events.  The request carries the venue,
// title and the section specs; the full seat layout is generated here and
// persisted together with the event row in one transaction.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id is required"})
	}
	if len(req.Sections) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sections is required"})
	}

	ctx := c.Request().Context()

	// The venue must exist and belong to the caller.
	if _, err := h.Venues.GetByIDAndOrganizer(ctx, req.VenueID, uid); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	seats, err := layout.Generate(req.Sections)
	if err != nil {
		if errors.Is(err, layout.ErrInvalidSection) || errors.Is(err, layout.ErrDuplicateSeatID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "layout generation failed"})
	}

	ev := repository.EventRecord{OrganizerID: uid, VenueID: req.VenueID, Title: req.Title}
	if req.StartsAt != nil {
		ev.StartsAt = sql.NullTime{Time: req.StartsAt.UTC(), Valid: true}
	}
	if err := h.Events.CreateWithSeats(ctx, &ev, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}

	// The response carries the generated seat sequence so the client
	// sees the exact layout, in order, without a second request.
	return c.JSON(http.StatusCreated, toEventResp(ev, seats))
}

// ListEvents handles GET /v1/events and returns the caller's events.
func (h *OrganizerHandler) ListEvents(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Events.ListByOrganizer(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]eventResp, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResp(ev, nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// DeleteEvent handles DELETE /v1/events/:id.  Seat rows go with the event
// via ON DELETE CASCADE.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.DeleteByIDAndOrganizer(c.Request().Context(), id, uid); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
