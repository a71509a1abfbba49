package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"roomdesk/internal/backend"
	"roomdesk/internal/middleware"
	"roomdesk/internal/models"
	"roomdesk/internal/session"
	"roomdesk/internal/view"
)

// datetime-local inputs submit this layout.
const formTimeLayout = "2006-01-02T15:04"

type bookFormVM struct {
	Page      view.Page
	Room      models.Room
	StartTime string
	EndTime   string
}

type myBookingsVM struct {
	Page     view.Page
	Bookings []models.Booking
}

type rescheduleVM struct {
	Page    view.Page
	Booking models.Booking
}

// parseRange reads the start/end form values. The second return is a
// user-facing validation message; a non-empty one means no network call is
// made.
func parseRange(c echo.Context) (time.Time, time.Time, string) {
	start, err1 := time.ParseInLocation(formTimeLayout, c.FormValue("startTime"), time.Local)
	end, err2 := time.ParseInLocation(formTimeLayout, c.FormValue("endTime"), time.Local)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, "Please select both start and end times"
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, "End time must be after start time"
	}
	return start, end, ""
}

// ShowBookForm renders the booking form for one room.
func (h *Handler) ShowBookForm(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	room, err := h.apiFor(sess).GetRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			return h.renderError(c, http.StatusNotFound, "Room not found")
		}
		return h.renderError(c, http.StatusBadGateway, "Room not found or server unavailable")
	}
	return c.Render(http.StatusOK, "room_book.html", bookFormVM{
		Page: h.page(c, "Book "+room.Name),
		Room: *room,
	})
}

// CreateBooking submits the form. Validation failures never reach the
// backend.
func (h *Handler) CreateBooking(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	roomID := c.Param("id")
	formURL := "/rooms/" + roomID + "/book"

	start, end, problem := parseRange(c)
	if problem != "" {
		h.flash(c, "error", problem)
		return c.Redirect(http.StatusSeeOther, formURL)
	}

	return h.run(c, mutation{
		action:       "create_booking",
		entityID:     roomID,
		success:      "Booking successful!",
		fallback:     "Booking failed",
		redirect:     "/mybookings",
		failRedirect: formURL,
		call: func(ctx context.Context) error {
			_, err := h.apiFor(sess).CreateBooking(ctx, roomID, start, end)
			return err
		},
	})
}

// MyBookings renders the caller's bookings, always freshly fetched.
func (h *Handler) MyBookings(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	bookings, err := h.apiFor(sess).MyBookings(c.Request().Context())
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, "Failed to load bookings")
	}
	return c.Render(http.StatusOK, "mybookings.html", myBookingsVM{
		Page:     h.page(c, "My Bookings"),
		Bookings: bookings,
	})
}

// CancelBooking cancels after confirmation.
func (h *Handler) CancelBooking(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	bookingID := c.Param("id")
	return h.run(c, mutation{
		action:   "cancel_booking",
		entityID: bookingID,
		confirm:  "Are you sure you want to cancel this booking?",
		success:  "Booking cancelled",
		fallback: "Failed to cancel booking",
		redirect: "/mybookings",
		call: func(ctx context.Context) error {
			return h.apiFor(sess).CancelBooking(ctx, bookingID)
		},
	})
}

// ShowReschedule renders the reschedule form prefilled with the current
// range.
func (h *Handler) ShowReschedule(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	bookingID := c.Param("id")

	booking, err := h.findOwnBooking(c.Request().Context(), sess, bookingID)
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, "Failed to load bookings")
	}
	if booking == nil {
		return h.renderError(c, http.StatusNotFound, "Booking not found")
	}
	return c.Render(http.StatusOK, "reschedule.html", rescheduleVM{
		Page:    h.page(c, "Reschedule"),
		Booking: *booking,
	})
}

// Reschedule moves a booking. End must be strictly after start or the
// submission is rejected locally.
func (h *Handler) Reschedule(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	bookingID := c.Param("id")
	formURL := "/bookings/" + bookingID + "/reschedule"

	start, end, problem := parseRange(c)
	if problem != "" {
		h.flash(c, "error", problem)
		return c.Redirect(http.StatusSeeOther, formURL)
	}

	return h.run(c, mutation{
		action:       "reschedule_booking",
		entityID:     bookingID,
		success:      "Booking rescheduled successfully!",
		fallback:     "Failed to reschedule booking",
		redirect:     "/mybookings",
		failRedirect: formURL,
		call: func(ctx context.Context) error {
			return h.apiFor(sess).RescheduleBooking(ctx, bookingID, start, end)
		},
	})
}

// findOwnBooking scans the caller's bookings for id. (nil, nil) means the
// backend answered but the booking is not theirs.
func (h *Handler) findOwnBooking(ctx context.Context, sess *session.Session, id string) (*models.Booking, error) {
	bookings, err := h.apiFor(sess).MyBookings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, nil
}
