package stats

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// Cell is one slot of a calendar grid or week strip.
type Cell struct {
	Date      string  `json:"date,omitempty"`
	Day       int     `json:"day,omitempty"`
	Weekday   string  `json:"weekday,omitempty"`
	Status    *string `json:"status"`
	IsToday   bool    `json:"is_today"`
	IsFuture  bool    `json:"is_future"`
	IsPadding bool    `json:"is_padding"`

	// Uncovered marks a past or current day without any record. Future days
	// are never uncovered.
	Uncovered bool `json:"uncovered"`
}

// PaddingFor is the number of leading blank cells before first so that it
// lands in its weekday column under the weekStart convention.
func PaddingFor(first time.Time, weekStart time.Weekday) int {
	return (int(first.Weekday()) - int(weekStart) + 7) % 7
}

// MonthGrid lays out month as padding cells followed by one cell per day.
// The history view uses time.Sunday.
func MonthGrid(month time.Time, records []attendance.Attendance, today time.Time, weekStart time.Weekday) []Cell {
	first := MonthStart(month)
	days := DaysIn(month)
	padding := PaddingFor(first, weekStart)

	cells := make([]Cell, 0, padding+days)
	for i := 0; i < padding; i++ {
		cells = append(cells, Cell{IsPadding: true})
	}
	for i := 0; i < days; i++ {
		cells = append(cells, dayCell(first.AddDate(0, 0, i), records, today))
	}
	return cells
}

// WeekStrip returns the seven days of today's Monday-start week.
func WeekStrip(today time.Time, records []attendance.Attendance) []Cell {
	d := attendance.DateOf(today)
	start := d.AddDate(0, 0, -PaddingFor(d, time.Monday))

	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		cells = append(cells, dayCell(start.AddDate(0, 0, i), records, today))
	}
	return cells
}

func dayCell(day time.Time, records []attendance.Attendance, today time.Time) Cell {
	todayDate := attendance.DateOf(today)
	c := Cell{
		Date:     day.Format(attendance.DateLayout),
		Day:      day.Day(),
		Weekday:  day.Weekday().String()[:3],
		IsToday:  day.Equal(todayDate),
		IsFuture: day.After(todayDate),
	}
	if r := firstOnDay(records, day); r != nil {
		s := string(r.Status)
		c.Status = &s
	} else if !c.IsFuture {
		c.Uncovered = true
	}
	return c
}

func firstOnDay(records []attendance.Attendance, day time.Time) *attendance.Attendance {
	for i := range records {
		if SameDay(records[i].Date, day) {
			return &records[i]
		}
	}
	return nil
}
