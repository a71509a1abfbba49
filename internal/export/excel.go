// Package export builds the admin xlsx report: every booking known to the
// backend plus the local admin-action trail.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"roomdesk/internal/audit"
	"roomdesk/internal/models"
)

// Writer builds a workbook sheet by sheet.
type Writer struct {
	file         *excelize.File
	currentSheet string
	currentRow   int
}

func NewWriter() *Writer {
	return &Writer{file: excelize.NewFile()}
}

// AddSheet starts a new sheet with the given name.
func (w *Writer) AddSheet(name string) error {
	// Excel caps sheet names at 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}

	if w.currentSheet == "" {
		w.file.SetSheetName("Sheet1", name)
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	w.currentSheet = name
	w.currentRow = 1
	return nil
}

// WriteHeader writes bold column headers to the current sheet.
func (w *Writer) WriteHeader(columns []string) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, col); err != nil {
			return err
		}
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, w.currentRow)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), w.currentRow)
		_ = w.file.SetCellStyle(w.currentSheet, startCell, endCell, style)
	}

	w.currentRow++
	return nil
}

// WriteRow writes one data row to the current sheet.
func (w *Writer) WriteRow(row []interface{}) error {
	if w.currentSheet == "" {
		return fmt.Errorf("no active sheet")
	}

	for i, val := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, w.currentRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.currentSheet, cell, val); err != nil {
			return err
		}
	}

	w.currentRow++
	return nil
}

// Save writes the workbook to wr.
func (w *Writer) Save(wr io.Writer) error {
	return w.file.Write(wr)
}

// Close releases resources.
func (w *Writer) Close() error {
	return w.file.Close()
}

// BookingsReport renders the all-bookings sheet plus the admin-action
// trail into a single workbook.
func BookingsReport(wr io.Writer, bookings []models.Booking, trail []audit.Entry) error {
	w := NewWriter()
	defer w.Close()

	if err := w.AddSheet("Bookings"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"ID", "Room", "User", "Email", "Start", "End", "Status", "Created"}); err != nil {
		return err
	}
	for _, b := range bookings {
		row := []interface{}{
			b.ID,
			b.Room.Name,
			b.User.Name,
			b.User.Email,
			b.StartTime.Format(time.RFC3339),
			b.EndTime.Format(time.RFC3339),
			b.Status,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}

	if err := w.AddSheet("Admin actions"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"When", "Actor", "Action", "Entity", "Outcome", "Message"}); err != nil {
		return err
	}
	for _, e := range trail {
		entity := e.EntityType
		if e.EntityID != "" {
			entity = strings.Join([]string{e.EntityType, e.EntityID}, " ")
		}
		row := []interface{}{
			e.CreatedAt.Format(time.RFC3339),
			e.ActorEmail,
			e.Action,
			entity,
			e.Outcome,
			e.Message,
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}

	return w.Save(wr)
}
