package stats

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/stretchr/testify/assert"
)

func teamRows() []TeamRow {
	return []TeamRow{
		{Attendance: attendance.Attendance{UserID: "u1", Status: attendance.StatusPresent}, Profile: profile.DisplayName{FullName: "Alice Moreno", EmployeeID: "EMP-001"}},
		{Attendance: attendance.Attendance{UserID: "u2", Status: attendance.StatusLate}, Profile: profile.DisplayName{FullName: "Bob Tan", EmployeeID: "EMP-002"}},
		{Attendance: attendance.Attendance{UserID: "u1", Status: attendance.StatusLate}, Profile: profile.DisplayName{FullName: "Alice Moreno", EmployeeID: "EMP-001"}},
		{Attendance: attendance.Attendance{UserID: "u3", Status: attendance.StatusAbsent}},
	}
}

func TestFilterTeam(t *testing.T) {
	rows := teamRows()

	assert.Len(t, FilterTeam(rows, TeamFilter{}), 4)
	assert.Len(t, FilterTeam(rows, TeamFilter{Search: "alice"}), 2)
	assert.Len(t, FilterTeam(rows, TeamFilter{Search: "emp-002"}), 1)
	assert.Len(t, FilterTeam(rows, TeamFilter{Status: "late"}), 2)
	assert.Len(t, FilterTeam(rows, TeamFilter{UserID: "u1", Status: "late"}), 1)
	assert.Len(t, FilterTeam(rows, TeamFilter{Search: "bob", UserID: "u1"}), 0)
	assert.Empty(t, FilterTeam(rows, TeamFilter{Search: "zed"}))
}

func TestTeamToday(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	in := now
	records := []attendance.Attendance{
		{UserID: "u1", Date: date("2024-03-01"), CheckInTime: &in, Status: attendance.StatusPresent},
		{UserID: "u2", Date: date("2024-03-01"), CheckInTime: &in, Status: attendance.StatusLate},
		{UserID: "u3", Date: date("2024-03-01"), Status: attendance.StatusAbsent},
		{UserID: "u1", Date: date("2024-02-29"), CheckInTime: &in, Status: attendance.StatusLate},
	}

	assert.Equal(t, TodayStats{TeamSize: 5, Present: 2, Late: 1, Absent: 3}, TeamToday(records, now, 5))
	assert.Equal(t, 0, TeamToday(records, now, 1).Absent)
}

func TestManagerDashboard(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	in := now
	records := []attendance.Attendance{
		{UserID: "u1", Date: date("2024-03-01"), CheckInTime: &in},
		{UserID: "u2", Date: date("2024-03-01")},
		{UserID: "u3", Date: date("2024-02-28"), CheckInTime: &in},
	}

	got := ManagerDashboard(records, now)
	assert.Equal(t, ManagerToday{UniqueEmployees: 3, Present: 1, Absent: 1, Rate: 50}, got)
	assert.Equal(t, ManagerToday{}, ManagerDashboard(nil, now))
}
