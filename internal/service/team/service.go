package team

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
)

type TeamServiceImpl struct {
	attendance.AttendanceRepository
	profile.ProfileRepository
	loc *time.Location
	now func() time.Time
}

func NewTeamService(
	attendanceRepo attendance.AttendanceRepository,
	profileRepo profile.ProfileRepository,
	loc *time.Location,
) team.TeamService {
	if loc == nil {
		loc = time.Local
	}
	return &TeamServiceImpl{
		AttendanceRepository: attendanceRepo,
		ProfileRepository:    profileRepo,
		loc:                  loc,
		now:                  time.Now,
	}
}

func requireManager(sess session.Session) error {
	if !sess.IsManager() {
		return user.ErrManagerAccessRequired
	}
	return nil
}

// FetchAll implements team.TeamService.
func (s *TeamServiceImpl) FetchAll(ctx context.Context, sess session.Session, limit int) ([]stats.TeamRow, error) {
	if err := requireManager(sess); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = team.DefaultLimit
	}

	records, err := s.AttendanceRepository.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrFetchFailed, err)
	}

	seen := make(map[string]struct{}, len(records))
	userIDs := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		userIDs = append(userIDs, r.UserID)
	}

	profiles, err := s.ProfileRepository.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team profiles: %w", err)
	}
	byUser := make(map[string]*profile.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}

	rows := make([]stats.TeamRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, stats.TeamRow{
			Attendance: r,
			Profile:    byUser[r.UserID].Display(),
		})
	}
	return rows, nil
}

// Search implements team.TeamService.
func (s *TeamServiceImpl) Search(ctx context.Context, sess session.Session, filter team.Filter) (team.TeamResponse, error) {
	if err := filter.Validate(); err != nil {
		return team.TeamResponse{}, err
	}

	rows, err := s.FetchAll(ctx, sess, team.DefaultLimit)
	if err != nil {
		return team.TeamResponse{}, err
	}

	teamSize, err := s.ProfileRepository.Count(ctx)
	if err != nil {
		return team.TeamResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	records := make([]attendance.Attendance, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Attendance)
	}

	return team.TeamResponse{
		Stats:   stats.TeamToday(records, attendance.DateOf(s.now().In(s.loc)), teamSize),
		Records: team.NewTeamRecordResponses(stats.FilterTeam(rows, filter.ToStats())),
	}, nil
}

// Employees implements team.TeamService.
func (s *TeamServiceImpl) Employees(ctx context.Context, sess session.Session) ([]team.EmployeeResponse, error) {
	if err := requireManager(sess); err != nil {
		return nil, err
	}

	profiles, err := s.ProfileRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return team.NewEmployeeResponses(profiles), nil
}

// Export implements team.TeamService.
func (s *TeamServiceImpl) Export(ctx context.Context, sess session.Session, filter team.Filter, w io.Writer) (string, error) {
	if err := filter.Validate(); err != nil {
		return "", err
	}

	rows, err := s.FetchAll(ctx, sess, team.DefaultLimit)
	if err != nil {
		return "", err
	}

	if err := export.WriteAttendanceCSV(w, stats.FilterTeam(rows, filter.ToStats()), s.loc); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return export.Filename(s.now().In(s.loc)), nil
}
