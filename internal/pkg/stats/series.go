package stats

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type DayPoint struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// DailySeries returns one point per day of month in order. Present counts
// present and late records; absent counts absent records.
func DailySeries(month time.Time, records []attendance.Attendance) []DayPoint {
	first := MonthStart(month)
	days := DaysIn(month)

	points := make([]DayPoint, days)
	for i := range points {
		d := first.AddDate(0, 0, i)
		points[i] = DayPoint{Day: d.Day(), Date: d.Format(attendance.DateLayout)}
	}
	for _, r := range records {
		if !InMonth(r.Date, month) {
			continue
		}
		p := &points[attendance.DateOf(r.Date).Day()-1]
		switch {
		case r.Status.PresentLike():
			p.Present++
		case r.Status == attendance.StatusAbsent:
			p.Absent++
		}
	}
	return points
}
