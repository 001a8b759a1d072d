package stats

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
)

// TeamRow is an attendance record joined with its owner's display fields.
type TeamRow struct {
	Attendance attendance.Attendance
	Profile    profile.DisplayName
}

// TeamFilter predicates are ANDed; empty fields match everything.
type TeamFilter struct {
	Search string
	UserID string
	Status string
}

func (f TeamFilter) Match(row TeamRow) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(row.Profile.FullName), q) &&
			!strings.Contains(strings.ToLower(row.Profile.EmployeeID), q) {
			return false
		}
	}
	if f.UserID != "" && row.Attendance.UserID != f.UserID {
		return false
	}
	if f.Status != "" && string(row.Attendance.Status) != f.Status {
		return false
	}
	return true
}

func FilterTeam(rows []TeamRow, f TeamFilter) []TeamRow {
	out := make([]TeamRow, 0, len(rows))
	for _, row := range rows {
		if f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

type TodayStats struct {
	TeamSize int `json:"total_employees"`
	Present  int `json:"present_today"`
	Late     int `json:"late_today"`
	Absent   int `json:"absent_today"`
}

// TeamToday counts today's check-ins. Absent is the team size minus those
// present, never below zero.
func TeamToday(records []attendance.Attendance, today time.Time, teamSize int) TodayStats {
	s := TodayStats{TeamSize: teamSize}
	for _, r := range FilterDay(records, today) {
		if r.CheckInTime != nil {
			s.Present++
		}
		if r.Status == attendance.StatusLate {
			s.Late++
		}
	}
	s.Absent = teamSize - s.Present
	if s.Absent < 0 {
		s.Absent = 0
	}
	return s
}

type ManagerToday struct {
	UniqueEmployees int `json:"unique_employees"`
	Present         int `json:"present_today"`
	Absent          int `json:"absent_today"`
	Rate            int `json:"attendance_rate"`
}

// ManagerDashboard summarizes a recent team window: distinct employees
// seen, and today's rows with and without a check-in.
func ManagerDashboard(records []attendance.Attendance, today time.Time) ManagerToday {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.UserID] = struct{}{}
	}

	todays := FilterDay(records, today)
	var present int
	for _, r := range todays {
		if r.CheckInTime != nil {
			present++
		}
	}
	return ManagerToday{
		UniqueEmployees: len(seen),
		Present:         present,
		Absent:          len(todays) - present,
		Rate:            Percent(present, len(todays)),
	}
}
