package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"roomdesk/internal/audit"
	"roomdesk/internal/export"
	"roomdesk/internal/middleware"
	"roomdesk/internal/models"
	"roomdesk/internal/view"
)

type adminBookingsVM struct {
	Page     view.Page
	Bookings []models.Booking
}

type auditVM struct {
	Page    view.Page
	Entries []audit.Entry
}

// AllBookings renders every booking for admins.
func (h *Handler) AllBookings(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	bookings, err := h.apiFor(sess).AllBookings(c.Request().Context())
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, "Failed to load bookings")
	}
	return c.Render(http.StatusOK, "admin_bookings.html", adminBookingsVM{
		Page:     h.page(c, "All Bookings"),
		Bookings: bookings,
	})
}

// ExportBookings streams the xlsx report: all bookings plus the local
// admin-action trail.
func (h *Handler) ExportBookings(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	ctx := c.Request().Context()

	bookings, err := h.apiFor(sess).AllBookings(ctx)
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, "Failed to load bookings")
	}
	trail, err := h.audit.Recent(ctx, 500)
	if err != nil {
		h.logger.Error().Err(err).Msg("audit read failed, exporting bookings only")
	}

	var buf bytes.Buffer
	if err := export.BookingsReport(&buf, bookings, trail); err != nil {
		return h.renderError(c, http.StatusInternalServerError, "Failed to build report")
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// AuditTrail renders the local record of admin actions.
func (h *Handler) AuditTrail(c echo.Context) error {
	entries, err := h.audit.Recent(c.Request().Context(), 200)
	if err != nil {
		return h.renderError(c, http.StatusInternalServerError, "Failed to load audit trail")
	}
	return c.Render(http.StatusOK, "admin_audit.html", auditVM{
		Page:    h.page(c, "Audit"),
		Entries: entries,
	})
}
