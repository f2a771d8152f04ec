package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// VenueStore is the slice of the venue repository the organizer
// endpoints need.  *repository.VenueRepo satisfies it.
type VenueStore interface {
	Create(ctx context.Context, v *repository.Venue) error
	GetByIDAndOrganizer(ctx context.Context, id, organizerID uint64) (*repository.Venue, error)
	ListByOrganizer(ctx context.Context, organizerID uint64) ([]repository.Venue, error)
	DeleteByIDAndOrganizer(ctx context.Context, id, organizerID uint64) error
}

// EventCatalog is the slice of the event repository the organizer
// endpoints write through.  *repository.EventRepo satisfies it.
type EventCatalog interface {
	CreateWithSeats(ctx context.Context, ev *repository.EventRecord, seats []model.Seat) error
	ListByOrganizer(ctx context.Context, organizerID uint64) ([]repository.EventRecord, error)
	DeleteByIDAndOrganizer(ctx context.Context, id, organizerID uint64) error
}

// OrganizerHandler groups the stores organizers use to manage venues
// and events.  All routes behind it require the ORGANIZER role.
type OrganizerHandler struct {
	Venues VenueStore
	Events EventCatalog
}

func NewOrganizerHandler(v VenueStore, e EventCatalog) *OrganizerHandler {
	if v == nil || e == nil {
		panic("nil store passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{Venues: v, Events: e}
}

type createVenueReq struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

type venueResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toVenueResp(v repository.Venue) venueResp {
	out := venueResp{ID: v.ID, Name: v.Name, IsActive: v.IsActive, CreatedAt: v.CreatedAt}
	if v.Address.Valid {
		addr := v.Address.String
		out.Address = &addr
	}
	return out
}

// CreateVenue handles POST /v1/venues.
func (h *OrganizerHandler) CreateVenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createVenueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	v := repository.Venue{OrganizerID: uid, Name: req.Name, IsActive: true}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		v.Address = sql.NullString{String: strings.TrimSpace(*req.Address), Valid: true}
	}
	if err := h.Venues.Create(c.Request().Context(), &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, toVenueResp(v))
}

// ListVenues handles GET /v1/venues and returns only the caller's venues.
func (h *OrganizerHandler) ListVenues(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	venues, err := h.Venues.ListByOrganizer(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]venueResp, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": out})
}

// DeleteVenue handles DELETE /v1/venues/:id.  Only the owning organizer
// may delete a venue.
func (h *OrganizerHandler) DeleteVenue(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	if err := h.Venues.DeleteByIDAndOrganizer(c.Request().Context(), id, uid); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
