package backend

import (
	"context"
	"net/url"

	"roomdesk/internal/models"
)

const roomsCacheKey = "rooms"

// RoomInput is the admin create/update payload.
type RoomInput struct {
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// ListRooms returns the full room catalog. Reads go through the optional
// Redis cache; any room mutation drops the cached copy so the next list is
// a real fetch.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if c.readCache(ctx, roomsCacheKey, &rooms) {
		return rooms, nil
	}
	if err := c.doGet(ctx, "list_rooms", "/rooms", &rooms); err != nil {
		return nil, err
	}
	c.writeCache(ctx, roomsCacheKey, rooms)
	return rooms, nil
}

// GetRoom fetches a single room by id.
func (c *Client) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	if err := c.doGet(ctx, "get_room", "/rooms/"+url.PathEscape(roomID), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateRoom creates a room (admin).
func (c *Client) CreateRoom(ctx context.Context, in RoomInput) (*models.Room, error) {
	var room models.Room
	if err := c.doJSON(ctx, "create_room", "POST", "/rooms", in, &room); err != nil {
		return nil, err
	}
	c.dropCache(ctx, roomsCacheKey)
	return &room, nil
}

// UpdateRoom replaces a room's fields (admin).
func (c *Client) UpdateRoom(ctx context.Context, roomID string, in RoomInput) (*models.Room, error) {
	var room models.Room
	if err := c.doJSON(ctx, "update_room", "PUT", "/rooms/"+url.PathEscape(roomID), in, &room); err != nil {
		return nil, err
	}
	c.dropCache(ctx, roomsCacheKey)
	return &room, nil
}

// DeactivateRoom marks a room inactive (admin).
func (c *Client) DeactivateRoom(ctx context.Context, roomID string) error {
	if err := c.doJSON(ctx, "deactivate_room", "PATCH", "/rooms/"+url.PathEscape(roomID)+"/deactivate", nil, nil); err != nil {
		return err
	}
	c.dropCache(ctx, roomsCacheKey)
	return nil
}

// ActivateRoom marks a room active again (admin).
func (c *Client) ActivateRoom(ctx context.Context, roomID string) error {
	if err := c.doJSON(ctx, "activate_room", "PATCH", "/rooms/"+url.PathEscape(roomID)+"/activate", nil, nil); err != nil {
		return err
	}
	c.dropCache(ctx, roomsCacheKey)
	return nil
}

// DeleteRoomPermanent removes a room for good (admin).
func (c *Client) DeleteRoomPermanent(ctx context.Context, roomID string) error {
	if err := c.doJSON(ctx, "delete_room", "DELETE", "/rooms/"+url.PathEscape(roomID)+"/permanent", nil, nil); err != nil {
		return err
	}
	c.dropCache(ctx, roomsCacheKey)
	return nil
}

// RoomsAvailability returns the day-level availability of every room for a
// date (YYYY-MM-DD). The slots are computed entirely server-side.
func (c *Client) RoomsAvailability(ctx context.Context, date string) ([]models.RoomAvailability, error) {
	var out []models.RoomAvailability
	path := "/rooms/allroomsavailability?date=" + url.QueryEscape(date)
	if err := c.doGet(ctx, "rooms_availability", path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvailabilitySlots returns the hour-level availability of every room for a
// date (YYYY-MM-DD).
func (c *Client) AvailabilitySlots(ctx context.Context, date string) ([]models.RoomSlots, error) {
	var out []models.RoomSlots
	path := "/rooms/availabilityslots?date=" + url.QueryEscape(date)
	if err := c.doGet(ctx, "availability_slots", path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
