package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	operations operation.Service
	loc        *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	operations operation.Service,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		operations:           operations,
		loc:                  loc,
		now:                  time.Now,
	}
}

// localNow is the current instant in the configured timezone.
func (a *AttendanceServiceImpl) localNow() time.Time {
	return a.now().In(a.loc)
}

// FetchToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) FetchToday(ctx context.Context, sess session.Session) (*attendance.Attendance, error) {
	today, err := a.AttendanceRepository.GetByUserAndDate(ctx, sess.UserID, attendance.DateOf(a.localNow()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err)
	}
	return today, nil
}

// FetchHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) FetchHistory(ctx context.Context, sess session.Session, limit int) ([]attendance.Attendance, error) {
	if limit <= 0 {
		limit = attendance.DefaultHistoryLimit
	}
	records, err := a.AttendanceRepository.ListByUser(ctx, sess.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err)
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return records, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, sess session.Session) (attendance.TodayResponse, error) {
	nowLocal := a.localNow()
	checkIn := nowLocal.UTC()

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:      sess.UserID,
		Date:        attendance.DateOf(nowLocal),
		CheckInTime: &checkIn,
		Status:      attendance.StatusAt(nowLocal),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.TodayResponse{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.TodayResponse{}, fmt.Errorf("%w: %v", attendance.ErrWriteFailed, err)
	}

	a.operations.Log(ctx, operation.LogRequest{
		ActorUserID:  &sess.UserID,
		TargetUserID: &sess.UserID,
		Action:       operation.ActionCheckIn,
		Metadata: map[string]interface{}{
			"attendance_id": created.ID,
			"status":        string(created.Status),
		},
	})

	return a.todayResponse(ctx, sess, &created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, sess session.Session) (attendance.TodayResponse, error) {
	nowLocal := a.localNow()

	today, err := a.AttendanceRepository.GetByUserAndDate(ctx, sess.UserID, attendance.DateOf(nowLocal))
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("%w: %v", attendance.ErrWriteFailed, err)
	}
	if today == nil {
		return a.todayResponse(ctx, sess, nil), nil
	}
	if today.CheckOutTime != nil {
		return attendance.TodayResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := nowLocal.UTC()
	if today.CheckInTime != nil && checkOut.Before(*today.CheckInTime) {
		return attendance.TodayResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	updated, err := a.AttendanceRepository.SetCheckOut(ctx, today.ID, checkOut)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.TodayResponse{}, attendance.ErrAlreadyCheckedOut
		}
		if database.IsCheckViolation(err) {
			return attendance.TodayResponse{}, attendance.ErrCheckOutBeforeCheckIn
		}
		return attendance.TodayResponse{}, fmt.Errorf("%w: %v", attendance.ErrWriteFailed, err)
	}

	meta := map[string]interface{}{"attendance_id": updated.ID}
	if updated.TotalHours != nil {
		meta["total_hours"] = *updated.TotalHours
	}
	a.operations.Log(ctx, operation.LogRequest{
		ActorUserID:  &sess.UserID,
		TargetUserID: &sess.UserID,
		Action:       operation.ActionCheckOut,
		Metadata:     meta,
	})

	return a.todayResponse(ctx, sess, &updated), nil
}

// Week implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Week(ctx context.Context, sess session.Session) ([]attendance.WeekDayResponse, error) {
	nowLocal := a.localNow()
	today := attendance.DateOf(nowLocal)
	start := today.AddDate(0, 0, -stats.PaddingFor(today, time.Monday))

	records, err := a.AttendanceRepository.ListByUserBetween(ctx, sess.UserID, start, start.AddDate(0, 0, 6))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err)
	}

	cells := stats.WeekStrip(today, records)
	out := make([]attendance.WeekDayResponse, 0, len(cells))
	for _, c := range cells {
		out = append(out, attendance.WeekDayResponse{
			Date:     c.Date,
			Weekday:  c.Weekday,
			Status:   c.Status,
			IsToday:  c.IsToday,
			IsFuture: c.IsFuture,
		})
	}
	return out, nil
}

// todayResponse pairs today's record with a fresh history read. A failed
// read leaves the history empty; the write already succeeded.
func (a *AttendanceServiceImpl) todayResponse(ctx context.Context, sess session.Session, today *attendance.Attendance) attendance.TodayResponse {
	resp := attendance.TodayResponse{History: []attendance.AttendanceResponse{}}
	if today != nil {
		r := attendance.NewAttendanceResponse(*today)
		resp.Today = &r
	}

	history, err := a.FetchHistory(ctx, sess, attendance.DefaultHistoryLimit)
	if err != nil {
		slog.Warn("History refetch failed", "user_id", sess.UserID, "error", err)
		return resp
	}
	resp.History = attendance.NewAttendanceResponses(history)
	return resp
}
