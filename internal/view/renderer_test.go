package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomdesk/internal/models"
	"roomdesk/internal/session"
)

func TestNewRendererCompilesAllPages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{
		"login.html", "register.html", "rooms.html", "room_book.html",
		"availability.html", "mybookings.html", "reschedule.html",
		"confirm.html", "admin_bookings.html", "admin_audit.html", "error.html",
	} {
		_, ok := r.templates[name]
		assert.True(t, ok, "page %s is compiled", name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var sb strings.Builder
	err = r.Render(&sb, "nope.html", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.html")
}

func TestRenderRoomsPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	data := struct {
		Page  Page
		Rooms []models.Room
	}{
		Page: Page{
			Title:   "Rooms",
			User:    &models.User{Name: "Someone", Role: models.RoleAdmin},
			Flashes: []session.Flash{{Kind: "success", Message: "Room created successfully"}},
		},
		Rooms: []models.Room{
			{ID: "r1", Name: "Atrium", Capacity: 4, Amenities: []string{"TV"}, IsActive: true},
			{ID: "r2", Name: "Cellar", Capacity: 2, IsActive: false},
		},
	}

	var sb strings.Builder
	require.NoError(t, r.Render(&sb, "rooms.html", data, nil))
	body := sb.String()

	assert.Contains(t, body, "Atrium")
	assert.Contains(t, body, "Book Now")
	assert.Contains(t, body, "Unavailable")
	assert.Contains(t, body, "Room created successfully")
	assert.Contains(t, body, "flash-success")
	assert.Contains(t, body, "+ Create Room", "admin sees the create form")
}

func TestRenderHidesAdminControlsForUsers(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	data := struct {
		Page  Page
		Rooms []models.Room
	}{
		Page:  Page{Title: "Rooms", User: &models.User{Role: models.RoleUser}},
		Rooms: []models.Room{{ID: "r1", Name: "Atrium", Capacity: 4, IsActive: true}},
	}

	var sb strings.Builder
	require.NoError(t, r.Render(&sb, "rooms.html", data, nil))
	body := sb.String()

	assert.NotContains(t, body, "Create Room")
	assert.NotContains(t, body, "Deactivate")
	assert.NotContains(t, body, "Delete Permanently")
}

func TestTimeHelpers(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 30, 0, 0, time.Local)

	fmtTime := funcs["fmtTime"].(func(time.Time) string)
	inputTime := funcs["inputTime"].(func(time.Time) string)

	assert.Equal(t, "Sep 1, 2026 10:30", fmtTime(ts))
	assert.Equal(t, "2026-09-01T10:30", inputTime(ts))
}
