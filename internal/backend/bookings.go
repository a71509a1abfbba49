package backend

import (
	"context"
	"net/url"
	"time"

	"roomdesk/internal/models"
)

type createBookingRequest struct {
	RoomID    string `json:"roomId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type rescheduleRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreateBooking books a room for [start, end). Times go out as ISO 8601;
// conflict resolution is entirely the backend's call.
func (c *Client) CreateBooking(ctx context.Context, roomID string, start, end time.Time) (*models.Booking, error) {
	var booking models.Booking
	body := createBookingRequest{
		RoomID:    roomID,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	}
	if err := c.doJSON(ctx, "create_booking", "POST", "/bookings", body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings lists the current user's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.doGet(ctx, "my_bookings", "/bookings/me", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AllBookings lists every booking (admin).
func (c *Client) AllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.doGet(ctx, "all_bookings", "/bookings/admin/all", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels a booking by id.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	return c.doJSON(ctx, "cancel_booking", "DELETE", "/bookings/"+url.PathEscape(bookingID)+"/cancel", nil, nil)
}

// RescheduleBooking moves a booking to a new [start, end).
func (c *Client) RescheduleBooking(ctx context.Context, bookingID string, start, end time.Time) error {
	body := rescheduleRequest{
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	}
	return c.doJSON(ctx, "reschedule_booking", "PATCH", "/bookings/"+url.PathEscape(bookingID)+"/reschedule", body, nil)
}
