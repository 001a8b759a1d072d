// Package stats holds the pure derivations behind the dashboard, history,
// team and report views. Dates are compared by calendar day only.
package stats

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// MonthStart returns the first day of ref's month as a date.
func MonthStart(ref time.Time) time.Time {
	y, m, _ := ref.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of ref's month as a date.
func MonthEnd(ref time.Time) time.Time {
	return MonthStart(ref).AddDate(0, 1, -1)
}

// DaysIn returns the number of calendar days in ref's month.
func DaysIn(ref time.Time) int {
	return MonthEnd(ref).Day()
}

// SameDay compares two instants by their calendar date.
func SameDay(a, b time.Time) bool {
	return attendance.DateOf(a).Equal(attendance.DateOf(b))
}

// InMonth reports whether date falls within [start, end] of ref's month.
func InMonth(date, ref time.Time) bool {
	d := attendance.DateOf(date)
	return !d.Before(MonthStart(ref)) && !d.After(MonthEnd(ref))
}

// FilterMonth keeps the records dated inside ref's month, preserving order.
func FilterMonth(records []attendance.Attendance, ref time.Time) []attendance.Attendance {
	out := make([]attendance.Attendance, 0, len(records))
	for _, r := range records {
		if InMonth(r.Date, ref) {
			out = append(out, r)
		}
	}
	return out
}

// FilterDay keeps the records dated on day.
func FilterDay(records []attendance.Attendance, day time.Time) []attendance.Attendance {
	out := make([]attendance.Attendance, 0)
	for _, r := range records {
		if SameDay(r.Date, day) {
			out = append(out, r)
		}
	}
	return out
}

// ParseMonth parses "YYYY-MM". An empty value yields fallback's month.
func ParseMonth(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return MonthStart(fallback), nil
	}
	t, ok := validator.IsValidMonth(value)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid month %q", value)
	}
	return MonthStart(t), nil
}

// RecentMonths returns the first day of ref's month and the n-1 months
// before it, oldest first.
func RecentMonths(ref time.Time, n int) []time.Time {
	start := MonthStart(ref)
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, start.AddDate(0, -i, 0))
	}
	return out
}
