package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
)

type AttendanceService interface {
	// FetchToday returns nil when there is no record for today.
	FetchToday(ctx context.Context, sess session.Session) (*Attendance, error)
	FetchHistory(ctx context.Context, sess session.Session, limit int) ([]Attendance, error)
	CheckIn(ctx context.Context, sess session.Session) (TodayResponse, error)

	// CheckOut is a no-op returning an empty today when nothing was checked in.
	CheckOut(ctx context.Context, sess session.Session) (TodayResponse, error)
	Week(ctx context.Context, sess session.Session) ([]WeekDayResponse, error)
}
