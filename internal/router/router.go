package router // route registration for the ticketing API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints.  Register, login and
// the refresh variants need no session; logout and /v1/me sit behind
// JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.POST("/auth/logout", a.Logout)
	auth.GET("/me", a.Me)
}

// RegisterOrganizer wires venue and event management under the ORGANIZER
// role.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ORGANIZER"))
	g.POST("/venues", o.CreateVenue)
	g.GET("/venues", o.ListVenues)
	g.DELETE("/venues/:id", o.DeleteVenue)
	g.POST("/events", o.CreateEvent)
	g.GET("/events", o.ListEvents)
	g.DELETE("/events/:id", o.DeleteEvent)
}

// RegisterAttendee wires the booking endpoints under the ATTENDEE role.
func RegisterAttendee(e *echo.Echo, a *handler.AttendeeHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ATTENDEE"))
	g.POST("/events/:id/book", a.BookSeats)
	g.POST("/events/:id/release", a.ReleaseSeats)
	g.GET("/my-seats", a.MySeats)
}

// RegisterPublic wires unauthenticated browse endpoints.  The seat map
// may sit behind a short-TTL response cache supplied by the caller.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/events/:id/seats", p.EventSeats, cache)
		return
	}
	e.GET("/v1/events/:id/seats", p.EventSeats)
}
