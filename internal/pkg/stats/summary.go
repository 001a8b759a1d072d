package stats

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type MonthlySummary struct {
	Month        string       `json:"month"`
	Records      int          `json:"total_records"`
	Counts       StatusCounts `json:"status_counts"`
	PresentDays  int          `json:"present_days"`
	TotalHours   float64      `json:"total_hours"`
	AverageHours float64      `json:"average_hours"`
	Rate         int          `json:"attendance_rate"`
}

// Summarize filters records to ref's month and aggregates them.
// employeeCount feeds the attendance rate; pass 1 for a single user.
func Summarize(records []attendance.Attendance, ref time.Time, employeeCount int) MonthlySummary {
	monthly := FilterMonth(records, ref)
	counts := Tally(monthly)
	hours := Hours(monthly)

	return MonthlySummary{
		Month:        MonthStart(ref).Format("2006-01"),
		Records:      len(monthly),
		Counts:       counts,
		PresentDays:  counts.PresentLike(),
		TotalHours:   Round1(hours.Total),
		AverageHours: Round1(hours.Average),
		Rate:         AttendanceRate(counts, DaysIn(ref), employeeCount),
	}
}
