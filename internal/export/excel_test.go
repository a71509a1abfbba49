package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"roomdesk/internal/audit"
	"roomdesk/internal/models"
)

func TestBookingsReport(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{
			ID:        "b1",
			Room:      models.RoomRef{ID: "r1", Name: "Atrium"},
			User:      models.UserRef{ID: "u1", Name: "Someone", Email: "someone@example.com"},
			Status:    models.StatusConfirmed,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			CreatedAt: start.Add(-24 * time.Hour),
		},
	}
	trail := []audit.Entry{
		{
			ActorEmail: "admin@example.com",
			Action:     "deactivate_room",
			EntityType: "room",
			EntityID:   "r1",
			Outcome:    audit.OutcomeOK,
			CreatedAt:  start,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, BookingsReport(&buf, bookings, trail))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Bookings", "Admin actions"}, f.GetSheetList())

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Room", "User", "Email", "Start", "End", "Status", "Created"}, rows[0])
	assert.Equal(t, "b1", rows[1][0])
	assert.Equal(t, "Atrium", rows[1][1])
	assert.Equal(t, "someone@example.com", rows[1][3])
	assert.Equal(t, "2026-09-01T10:00:00Z", rows[1][4])
	assert.Equal(t, models.StatusConfirmed, rows[1][6])

	rows, err = f.GetRows("Admin actions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "admin@example.com", rows[1][1])
	assert.Equal(t, "deactivate_room", rows[1][2])
	assert.Equal(t, "room r1", rows[1][3])
}

func TestAddSheetTruncatesLongNames(t *testing.T) {
	w := NewWriter()
	defer w.Close()

	long := "a very long sheet name that exceeds the excel limit"
	require.NoError(t, w.AddSheet(long))
	require.NoError(t, w.WriteHeader([]string{"A"}))

	var buf bytes.Buffer
	require.NoError(t, w.Save(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.Len(t, sheets[0], 31)
}
