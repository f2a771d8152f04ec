package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/booking"
	"github.com/iliyamo/event-ticketing/internal/layout"
	"github.com/iliyamo/event-ticketing/internal/model"
)

// PublicHandler serves unauthenticated browse endpoints.
type PublicHandler struct {
	Coord *booking.Coordinator
}

func NewPublicHandler(coord *booking.Coordinator) *PublicHandler {
	if coord == nil {
		panic("nil coordinator passed to NewPublicHandler")
	}
	return &PublicHandler{Coord: coord}
}

type seatView struct {
	ID       string `json:"id"`
	Section  string `json:"section"`
	Row      string `json:"row"`
	Column   int    `json:"column"`
	Occupied bool   `json:"occupied"`
}

// seatViews renders seats for API responses in their stored order,
// translating row numbers back to display labels.
func seatViews(seats []model.Seat) []seatView {
	out := make([]seatView, 0, len(seats))
	for _, s := range seats {
		out = append(out, seatView{
			ID:       s.ID,
			Section:  s.SectionType,
			Row:      layout.RowLabel(s.Row),
			Column:   s.Column,
			Occupied: s.Occupied,
		})
	}
	return out
}

// EventSeats handles GET /v1/events/:id/seats.  It returns the full seat
// map in generation order with occupancy flags.  Who holds a seat is
// never exposed here.
func (h *PublicHandler) EventSeats(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	seats, err := h.Coord.SeatMap(c.Request().Context(), eventID)
	if err != nil {
		if errors.Is(err, booking.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"event_id": eventID,
		"seats":    seatViews(seats),
	})
}
