package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/booking"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// EventDirectory is the slice of the event repository the booking
// endpoints read from.  *repository.EventRepo satisfies it.
type EventDirectory interface {
	GetByID(ctx context.Context, id uint64) (*repository.EventRecord, error)
	SeatsByAttendee(ctx context.Context, eventID, attendeeID uint64) ([]model.Seat, error)
}

// publishTimeout bounds the broker publish that runs after a booking
// response has already been sent.
const publishTimeout = 10 * time.Second

// AttendeeHandler serves the booking endpoints.  The coordinator owns all
// booking semantics; this layer only translates between HTTP and the
// coordinator's error taxonomy.  Publish defaults to the RabbitMQ
// publisher and runs off the request path.
type AttendeeHandler struct {
	Coord   *booking.Coordinator
	Events  EventDirectory
	Publish func(ctx context.Context, ev queue.SeatsBookedEvent) error
}

func NewAttendeeHandler(coord *booking.Coordinator, events EventDirectory) *AttendeeHandler {
	if coord == nil || events == nil {
		panic("nil dependency passed to NewAttendeeHandler")
	}
	return &AttendeeHandler{Coord: coord, Events: events, Publish: service.PublishSeatsBooked}
}

type seatBatchReq struct {
	SeatIDs []string `json:"seat_ids"`
}

// BookSeats handles POST /v1/events/:id/book.  The batch is atomic: all
// requested seats are booked or none are.
func (h *AttendeeHandler) BookSeats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body seatBatchReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Coord.Book(c.Request().Context(), eventID, uid, body.SeatIDs)
	if err != nil {
		return bookingError(c, err)
	}

	// Audit trail goes through the broker.  The publish happens on its
	// own goroutine and deadline: a slow or unreachable broker must not
	// stall the response for a booking that already committed.
	if ev, gerr := h.Events.GetByID(c.Request().Context(), eventID); gerr == nil {
		msg := queue.SeatsBookedEvent{
			EventID:    eventID,
			EventTitle: ev.Title,
			AttendeeID: uid,
			SeatIDs:    res.SeatIDs,
			BookedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			_ = h.Publish(ctx, msg)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"event_id": res.EventID,
		"seats":    res.SeatIDs,
	})
}

// ReleaseSeats handles POST /v1/events/:id/release.  Only seats currently
// held by the caller can be released, and the batch is atomic like booking.
func (h *AttendeeHandler) ReleaseSeats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body seatBatchReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Coord.Release(c.Request().Context(), eventID, uid, body.SeatIDs)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id": res.EventID,
		"seats":    res.SeatIDs,
	})
}

// MySeats handles GET /v1/my-seats?event_id= and lists the seats the
// caller holds for the event.
func (h *AttendeeHandler) MySeats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.QueryParam("event_id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}

	seats, err := h.Events.SeatsByAttendee(c.Request().Context(), eventID, uid)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ids := make([]string, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.ID)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id": eventID,
		"seats":    ids,
	})
}

// bookingError maps the coordinator's error taxonomy onto HTTP responses.
// Invalid seat and conflict errors carry the offending seat IDs so the
// client can retry with a corrected batch.
func bookingError(c echo.Context, err error) error {
	var invalid *booking.InvalidSeatError
	var conflict *booking.ConflictError

	switch {
	case errors.Is(err, booking.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, booking.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids must be a non-empty list without duplicates"})
	case errors.Is(err, booking.ErrCapacityExceeded):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat cap per attendee exceeded"})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seats", "offending": invalid.SeatIDs})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats unavailable", "offending": conflict.SeatIDs})
	case errors.Is(err, booking.ErrLockTimeout):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "event is busy, retry shortly"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
}
