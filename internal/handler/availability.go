package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"roomdesk/internal/middleware"
	"roomdesk/internal/models"
	"roomdesk/internal/view"
)

const dateLayout = "2006-01-02"

type availabilityVM struct {
	Page  view.Page
	View  string // "hours" or "days"
	Date  string
	Slots []models.RoomSlots
	Days  []models.RoomAvailability
}

// Availability renders the per-date availability of all rooms, either as
// hour slots or as open days. All slot computation is server-side; this
// handler only picks a date and formats the answer.
func (h *Handler) Availability(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	date := c.QueryParam("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		date = time.Now().Format(dateLayout)
	}
	viewMode := c.QueryParam("view")
	if viewMode != "days" {
		viewMode = "hours"
	}

	vm := availabilityVM{Page: h.page(c, "Availability"), View: viewMode, Date: date}

	if viewMode == "hours" {
		slots, err := h.apiFor(sess).AvailabilitySlots(c.Request().Context(), date)
		if err != nil {
			return h.renderError(c, http.StatusBadGateway, "Failed to load availability")
		}
		vm.Slots = slots
	} else {
		days, err := h.apiFor(sess).RoomsAvailability(c.Request().Context(), date)
		if err != nil {
			return h.renderError(c, http.StatusBadGateway, "Failed to load availability")
		}
		vm.Days = days
	}

	return c.Render(http.StatusOK, "availability.html", vm)
}
