package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"roomdesk/internal/backend"
	"roomdesk/internal/middleware"
	"roomdesk/internal/models"
	"roomdesk/internal/view"
)

type roomsVM struct {
	Page  view.Page
	Rooms []models.Room
}

// ListRooms renders the catalog. This is also where every room mutation
// lands afterwards, so the list is always a fresh fetch.
func (h *Handler) ListRooms(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	rooms, err := h.apiFor(sess).ListRooms(c.Request().Context())
	if err != nil {
		return h.renderError(c, http.StatusBadGateway, "Failed to load rooms")
	}
	return c.Render(http.StatusOK, "rooms.html", roomsVM{Page: h.page(c, "Rooms"), Rooms: rooms})
}

func roomInputFromForm(c echo.Context) (backend.RoomInput, string) {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return backend.RoomInput{}, "Room name is required"
	}
	capacity, err := strconv.Atoi(c.FormValue("capacity"))
	if err != nil || capacity < 1 {
		return backend.RoomInput{}, "Capacity must be a positive number"
	}

	var amenities []string
	for _, a := range strings.Split(c.FormValue("amenities"), ",") {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}
	return backend.RoomInput{
		Name:        name,
		Capacity:    capacity,
		Description: strings.TrimSpace(c.FormValue("description")),
		Amenities:   amenities,
	}, ""
}

// CreateRoom handles the admin create form.
func (h *Handler) CreateRoom(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	in, problem := roomInputFromForm(c)
	if problem != "" {
		h.flash(c, "error", problem)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	return h.run(c, mutation{
		action:      "create_room",
		success:     "Room created successfully",
		fallback:    "Failed to create room",
		redirect:    "/",
		auditEntity: "room",
		call: func(ctx context.Context) error {
			_, err := h.apiFor(sess).CreateRoom(ctx, in)
			return err
		},
	})
}

// UpdateRoom handles the admin edit form.
func (h *Handler) UpdateRoom(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	roomID := c.Param("id")
	in, problem := roomInputFromForm(c)
	if problem != "" {
		h.flash(c, "error", problem)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	return h.run(c, mutation{
		action:      "update_room",
		entityID:    roomID,
		success:     "Room updated successfully",
		fallback:    "Failed to update room",
		redirect:    "/",
		auditEntity: "room",
		call: func(ctx context.Context) error {
			_, err := h.apiFor(sess).UpdateRoom(ctx, roomID, in)
			return err
		},
	})
}

// DeactivateRoom takes a room out of the catalog. Destructive, so it goes
// through the confirmation step.
func (h *Handler) DeactivateRoom(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	roomID := c.Param("id")
	return h.run(c, mutation{
		action:      "deactivate_room",
		entityID:    roomID,
		confirm:     "Are you sure you want to deactivate this room?",
		success:     "Room deactivated successfully",
		fallback:    "Action failed",
		redirect:    "/",
		auditEntity: "room",
		call: func(ctx context.Context) error {
			return h.apiFor(sess).DeactivateRoom(ctx, roomID)
		},
	})
}

// ActivateRoom puts an inactive room back.
func (h *Handler) ActivateRoom(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	roomID := c.Param("id")
	return h.run(c, mutation{
		action:      "activate_room",
		entityID:    roomID,
		success:     "Room activated successfully",
		fallback:    "Action failed",
		redirect:    "/",
		auditEntity: "room",
		call: func(ctx context.Context) error {
			return h.apiFor(sess).ActivateRoom(ctx, roomID)
		},
	})
}

// DeleteRoom permanently removes a room after confirmation.
func (h *Handler) DeleteRoom(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	roomID := c.Param("id")
	return h.run(c, mutation{
		action:      "delete_room",
		entityID:    roomID,
		confirm:     "This will permanently delete the room. Continue?",
		success:     "Room deleted permanently",
		fallback:    "Failed to delete room",
		redirect:    "/",
		auditEntity: "room",
		call: func(ctx context.Context) error {
			return h.apiFor(sess).DeleteRoomPermanent(ctx, roomID)
		},
	})
}
