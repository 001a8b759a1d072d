package stats

import (
	"math"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type StatusCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
}

func (c StatusCounts) Total() int {
	return c.Present + c.Absent + c.Late + c.HalfDay
}

// PresentLike is present plus late.
func (c StatusCounts) PresentLike() int {
	return c.Present + c.Late
}

// Slice lists the per-status counts in chart order, skipping zeros.
func (c StatusCounts) Slice() []StatusCount {
	all := []StatusCount{
		{Status: attendance.StatusPresent, Count: c.Present},
		{Status: attendance.StatusLate, Count: c.Late},
		{Status: attendance.StatusAbsent, Count: c.Absent},
		{Status: attendance.StatusHalfDay, Count: c.HalfDay},
	}
	out := make([]StatusCount, 0, len(all))
	for _, sc := range all {
		if sc.Count > 0 {
			out = append(out, sc)
		}
	}
	return out
}

type StatusCount struct {
	Status attendance.Status `json:"status"`
	Count  int               `json:"count"`
}

// Tally counts records by status. Unknown statuses contribute nothing.
func Tally(records []attendance.Attendance) StatusCounts {
	var c StatusCounts
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			c.Present++
		case attendance.StatusAbsent:
			c.Absent++
		case attendance.StatusLate:
			c.Late++
		case attendance.StatusHalfDay:
			c.HalfDay++
		}
	}
	return c
}

type HoursSummary struct {
	Total   float64 `json:"total_hours"`
	Average float64 `json:"average_hours"`
}

// Hours sums total_hours, counting a missing value as 0. The average is
// taken over every record and is 0 for an empty set.
func Hours(records []attendance.Attendance) HoursSummary {
	var total float64
	for _, r := range records {
		if r.TotalHours != nil {
			total += *r.TotalHours
		}
	}
	if len(records) == 0 {
		return HoursSummary{}
	}
	return HoursSummary{Total: total, Average: total / float64(len(records))}
}

// AttendanceRate is (present+late) / (days × employees) as a rounded
// percentage, 0 when the divisor is 0.
func AttendanceRate(c StatusCounts, daysInMonth, employeeCount int) int {
	return Percent(c.PresentLike(), daysInMonth*employeeCount)
}

// Percent returns part/whole × 100 rounded to the nearest integer, 0 when
// whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// Round1 rounds to one decimal place for display values.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
