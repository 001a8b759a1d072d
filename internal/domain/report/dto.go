package report

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
)

// MonthOption is one entry of the month selector.
type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type MonthlyReportResponse struct {
	Month        string               `json:"month"`
	Months       []MonthOption        `json:"months"`
	Summary      stats.MonthlySummary `json:"summary"`
	TeamSize     int                  `json:"team_size"`
	Distribution []stats.StatusCount  `json:"status_distribution"`
	Daily        []stats.DayPoint     `json:"daily"`
}

type HistoryResponse struct {
	Month    string                          `json:"month"`
	Months   []MonthOption                   `json:"months"`
	Calendar []stats.Cell                    `json:"calendar"`
	Stats    HistoryStats                    `json:"stats"`
	Records  []attendance.AttendanceResponse `json:"records"`
}

// HistoryStats counts present and late separately, unlike the dashboard.
type HistoryStats struct {
	PresentDays  int     `json:"present_days"`
	LateDays     int     `json:"late_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

type EmployeeDashboard struct {
	Today       *attendance.AttendanceResponse  `json:"today"`
	PresentDays int                             `json:"present_days"`
	TotalHours  float64                         `json:"total_hours"`
	AvgHours    float64                         `json:"average_hours"`
	Recent      []attendance.AttendanceResponse `json:"recent"`
}

// ManagerDashboard's recent rows carry each employee's display name.
type ManagerDashboard struct {
	stats.ManagerToday
	Recent []team.TeamRecordResponse `json:"recent"`
}

// DashboardResponse carries exactly one of Employee or Manager.
type DashboardResponse struct {
	Role     *string            `json:"role"`
	Employee *EmployeeDashboard `json:"employee,omitempty"`
	Manager  *ManagerDashboard  `json:"manager,omitempty"`
}
