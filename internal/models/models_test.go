package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{Role: RoleManager}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())

	var u *User
	assert.False(t, u.IsAdmin())
}

func TestBooking_Cancellable(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusConfirmed}).Cancellable())
	assert.True(t, (&Booking{Status: StatusPending}).Cancellable())
	assert.True(t, (&Booking{Status: StatusActive}).Cancellable())
	assert.False(t, (&Booking{Status: StatusCancelled}).Cancellable())
}

func TestBooking_DecodesPopulatedRefs(t *testing.T) {
	raw := `{
		"_id": "b1",
		"roomId": {"_id": "r1", "name": "Atrium", "capacity": 4, "amenities": ["TV", "Whiteboard"]},
		"userId": {"_id": "u1", "name": "Someone", "email": "someone@example.com"},
		"status": "confirmed",
		"startTime": "2026-09-01T10:00:00Z",
		"endTime": "2026-09-01T11:00:00Z",
		"createdAt": "2026-08-20T08:00:00Z",
		"updatedAt": "2026-08-20T08:00:00Z"
	}`

	var b Booking
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "Atrium", b.Room.Name)
	assert.Equal(t, []string{"TV", "Whiteboard"}, b.Room.Amenities)
	assert.Equal(t, "someone@example.com", b.User.Email)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, 10, b.StartTime.UTC().Hour())
	assert.True(t, b.EndTime.After(b.StartTime))
}
