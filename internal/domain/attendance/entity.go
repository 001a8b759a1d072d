package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

// Known reports whether s is one of the four stored statuses.
func (s Status) Known() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// PresentLike is true for statuses that count as attended.
func (s Status) PresentLike() bool {
	return s == StatusPresent || s == StatusLate
}

// LateAfterHour is the last local hour that still counts as on time.
const LateAfterHour = 9

// StatusAt derives the check-in status from the local time of day.
func StatusAt(local time.Time) Status {
	if local.Hour() > LateAfterHour {
		return StatusLate
	}
	return StatusPresent
}

// Attendance is one check-in/out entry per user per date. Date carries no
// time of day; it is midnight UTC of the calendar date.
type Attendance struct {
	ID           string
	UserID       string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	TotalHours   *float64
	Notes        *string
	CreatedAt    time.Time
}

// DateOf truncates t to its calendar date in t's location, expressed as
// midnight UTC so it compares cleanly with stored dates.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
