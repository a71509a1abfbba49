// Package router wires pages, middleware and static assets onto an Echo
// instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"roomdesk/internal/handler"
	"roomdesk/internal/middleware"
	"roomdesk/internal/session"
	"roomdesk/internal/view"
)

// New builds the Echo instance with every route registered.
func New(h *handler.Handler, sessions *session.Store, cookieName string, loginLimiter *middleware.LoginLimiter, logger zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.LoadSession(sessions, cookieName, logger))

	e.StaticFS("/static", view.Static())

	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)

	// Auth screens: only for visitors without a session.
	guest := e.Group("/auth", middleware.RequireGuest())
	guest.GET("/login", h.ShowLogin)
	guest.POST("/login", h.Login, loginLimiter.Middleware())
	guest.GET("/register", h.ShowRegister)
	guest.POST("/register", h.Register, loginLimiter.Middleware())

	e.POST("/auth/logout", h.Logout)

	// Everything else requires a session.
	app := e.Group("", middleware.RequireSession())
	app.GET("/", h.ListRooms)
	app.GET("/availability", h.Availability)
	app.GET("/rooms/:id/book", h.ShowBookForm)
	app.POST("/rooms/:id/book", h.CreateBooking)
	app.GET("/mybookings", h.MyBookings)
	app.POST("/bookings/:id/cancel", h.CancelBooking)
	app.GET("/bookings/:id/reschedule", h.ShowReschedule)
	app.POST("/bookings/:id/reschedule", h.Reschedule)

	// Admin surfaces.
	admin := e.Group("", middleware.RequireAdmin())
	admin.POST("/rooms", h.CreateRoom)
	admin.POST("/rooms/:id", h.UpdateRoom)
	admin.POST("/rooms/:id/activate", h.ActivateRoom)
	admin.POST("/rooms/:id/deactivate", h.DeactivateRoom)
	admin.POST("/rooms/:id/delete", h.DeleteRoom)
	admin.GET("/admin/bookings", h.AllBookings)
	admin.GET("/admin/bookings/export", h.ExportBookings)
	admin.GET("/admin/audit", h.AuditTrail)

	return e, nil
}
