// Package export renders team attendance as a downloadable CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
)

const ContentType = "text/csv; charset=utf-8"

var Header = []string{"Date", "Employee", "Employee ID", "Check In", "Check Out", "Hours", "Status"}

// Filename is attendance-<YYYY-MM-DD>.csv for the given day.
func Filename(now time.Time) string {
	return fmt.Sprintf("attendance-%s.csv", now.Format(attendance.DateLayout))
}

// WriteAttendanceCSV writes the header followed by one line per row.
// Times are rendered HH:mm in loc; fields are quoted when they contain
// a delimiter, quote or newline.
func WriteAttendanceCSV(w io.Writer, rows []stats.TeamRow, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(Record(row, loc)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record formats a single row in Header order.
func Record(row stats.TeamRow, loc *time.Location) []string {
	a := row.Attendance
	return []string{
		a.Date.Format(attendance.DateLayout),
		row.Profile.FullName,
		row.Profile.EmployeeID,
		clock(a.CheckInTime, loc),
		clock(a.CheckOutTime, loc),
		hoursCell(a.TotalHours),
		string(a.Status),
	}
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc != nil {
		return t.In(loc).Format("15:04")
	}
	return t.Format("15:04")
}

// hoursCell leaves the cell empty for missing or zero hours.
func hoursCell(h *float64) string {
	if h == nil || *h == 0 {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}
