package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Every list is ordered by date descending.
type AttendanceRepository interface {
	// GetByUserAndDate returns nil, nil when the user has no record for date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	ListByUser(ctx context.Context, userID string, limit int) ([]Attendance, error)
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)
	ListRecent(ctx context.Context, limit int) ([]Attendance, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Attendance, error)

	// Create inserts a new record; a second record for the same
	// (user, date) surfaces as a unique violation.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// SetCheckOut stamps the check-out time on record id and returns the row
	// with the store-computed total hours. A record that already has a
	// check-out is left untouched and yields ErrAlreadyCheckedOut.
	SetCheckOut(ctx context.Context, id string, at time.Time) (Attendance, error)
}
