package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
)

const (
	monthOptions = 3
	recentLimit  = 5
	teamRecent   = 10
	teamWindow   = 100
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	profile.ProfileRepository
	team team.TeamService
	loc  *time.Location
	now  func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	profileRepo profile.ProfileRepository,
	teamService team.TeamService,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		ProfileRepository:    profileRepo,
		team:                 teamService,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (s *ReportServiceImpl) localNow() time.Time {
	return s.now().In(s.loc)
}

// months lists the selector entries, current month first.
func (s *ReportServiceImpl) months() []report.MonthOption {
	recent := stats.RecentMonths(s.localNow(), monthOptions)
	out := make([]report.MonthOption, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		out = append(out, report.MonthOption{
			Value: recent[i].Format("2006-01"),
			Label: recent[i].Format("January 2006"),
		})
	}
	return out
}

func (s *ReportServiceImpl) parseMonth(value string) (time.Time, error) {
	month, err := stats.ParseMonth(value, s.localNow())
	if err != nil {
		return time.Time{}, report.ErrInvalidMonth
	}
	return month, nil
}

// degrade logs a failed read and substitutes an empty result.
func degrade(what string, records []attendance.Attendance, err error) []attendance.Attendance {
	if err != nil {
		slog.Warn("Report read failed", "read", what, "error", fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err))
		return []attendance.Attendance{}
	}
	return records
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, sess session.Session, month string) (report.MonthlyReportResponse, error) {
	if !sess.IsManager() {
		return report.MonthlyReportResponse{}, user.ErrManagerAccessRequired
	}
	ref, err := s.parseMonth(month)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	records, err := s.AttendanceRepository.ListBetween(ctx, stats.MonthStart(ref), stats.MonthEnd(ref))
	records = degrade("monthly attendance", records, err)

	teamSize, err := s.ProfileRepository.Count(ctx)
	if err != nil {
		slog.Warn("Report read failed", "read", "team size", "error", err)
		teamSize = 0
	}

	summary := stats.Summarize(records, ref, teamSize)
	return report.MonthlyReportResponse{
		Month:        summary.Month,
		Months:       s.months(),
		Summary:      summary,
		TeamSize:     teamSize,
		Distribution: summary.Counts.Slice(),
		Daily:        stats.DailySeries(ref, records),
	}, nil
}

// History implements report.ReportService.
func (s *ReportServiceImpl) History(ctx context.Context, sess session.Session, month string) (report.HistoryResponse, error) {
	ref, err := s.parseMonth(month)
	if err != nil {
		return report.HistoryResponse{}, err
	}

	records, err := s.AttendanceRepository.ListByUserBetween(ctx, sess.UserID, stats.MonthStart(ref), stats.MonthEnd(ref))
	records = stats.FilterMonth(degrade("history", records, err), ref)

	counts := stats.Tally(records)
	hours := stats.Hours(records)

	return report.HistoryResponse{
		Month:    ref.Format("2006-01"),
		Months:   s.months(),
		Calendar: stats.MonthGrid(ref, records, s.localNow(), time.Sunday),
		Stats: report.HistoryStats{
			PresentDays:  counts.Present,
			LateDays:     counts.Late,
			TotalHours:   stats.Round1(hours.Total),
			AverageHours: stats.Round1(hours.Average),
		},
		Records: attendance.NewAttendanceResponses(records),
	}, nil
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, sess session.Session) (report.DashboardResponse, error) {
	resp := report.DashboardResponse{Role: sess.RoleString()}

	if sess.IsManager() {
		rows, err := s.team.FetchAll(ctx, sess, teamWindow)
		if err != nil {
			slog.Warn("Report read failed", "read", "team window", "error", err)
			rows = []stats.TeamRow{}
		}

		records := make([]attendance.Attendance, 0, len(rows))
		for _, row := range rows {
			records = append(records, row.Attendance)
		}
		if len(rows) > teamRecent {
			rows = rows[:teamRecent]
		}

		resp.Manager = &report.ManagerDashboard{
			ManagerToday: stats.ManagerDashboard(records, attendance.DateOf(s.localNow())),
			Recent:       team.NewTeamRecordResponses(rows),
		}
		return resp, nil
	}

	nowLocal := s.localNow()
	dash := &report.EmployeeDashboard{}

	today, err := s.AttendanceRepository.GetByUserAndDate(ctx, sess.UserID, attendance.DateOf(nowLocal))
	if err != nil {
		slog.Warn("Report read failed", "read", "today", "error", err)
	} else if today != nil {
		r := attendance.NewAttendanceResponse(*today)
		dash.Today = &r
	}

	monthly, err := s.AttendanceRepository.ListByUserBetween(ctx, sess.UserID, stats.MonthStart(nowLocal), stats.MonthEnd(nowLocal))
	summary := stats.Summarize(degrade("month", monthly, err), nowLocal, 1)
	dash.PresentDays = summary.PresentDays
	dash.TotalHours = summary.TotalHours
	dash.AvgHours = summary.AverageHours

	recent, err := s.AttendanceRepository.ListByUser(ctx, sess.UserID, recentLimit)
	dash.Recent = attendance.NewAttendanceResponses(degrade("recent", recent, err))

	resp.Employee = dash
	return resp, nil
}
