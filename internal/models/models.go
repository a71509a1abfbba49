package models

import "time"

// Roles as reported by the backend.
const (
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Booking statuses as reported by the backend.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// User is the identity object returned by the auth endpoints. It is held
// only for the duration of a session; the backend owns the record.
type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// IsAdmin reports whether the user may use the admin room and booking
// surfaces.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Room is a display copy of a backend room. Never authoritative after a
// mutation; callers re-fetch instead of patching.
type Room struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	Amenities   []string  `json:"amenities"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomRef is the populated room object embedded in a booking.
type RoomRef struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}

// UserRef is the populated user object embedded in a booking.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking is a display copy of a backend booking. Status transitions are
// computed server-side only.
type Booking struct {
	ID        string    `json:"_id"`
	Room      RoomRef   `json:"roomId"`
	User      UserRef   `json:"userId"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cancellable reports whether the cancel/reschedule controls render.
func (b *Booking) Cancellable() bool {
	return b.Status != StatusCancelled
}

// RoomSummary is the room header embedded in availability responses.
type RoomSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description,omitempty"`
}

// Slot is a server-computed free time range. The front end formats it and
// performs no interval arithmetic of its own.
type Slot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	StartLabel      string    `json:"startTime,omitempty"`
	EndLabel        string    `json:"endTime,omitempty"`
}

// RoomAvailability is the per-date availability of one room, day-level view.
type RoomAvailability struct {
	Room                RoomSummary `json:"room"`
	Date                string      `json:"date"`
	AvailableSlots      []string    `json:"availableSlots"`
	TotalAvailableSlots int         `json:"totalAvailableSlots"`
	IsAvailable         bool        `json:"isAvailable"`
	TotalBookings       int         `json:"totalBookings"`
	NextAvailableSlot   *string     `json:"nextAvailableSlot"`
	LastAvailableSlot   *string     `json:"lastAvailableSlot"`
}

// RoomSlots is the per-date availability of one room, hour-level view.
type RoomSlots struct {
	Room                RoomSummary `json:"room"`
	Date                string      `json:"date"`
	AvailableSlots      []Slot      `json:"availableSlots"`
	TotalAvailableSlots int         `json:"totalAvailableSlots"`
	IsAvailable         bool        `json:"isAvailable"`
	TotalBookings       int         `json:"totalBookings"`
	NextAvailableSlot   *string     `json:"nextAvailableSlot"`
	LastAvailableSlot   *string     `json:"lastAvailableSlot"`
}
