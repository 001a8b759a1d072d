package team

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const DefaultLimit = 100

// Filter is the query-string form of stats.TeamFilter. "all" and empty
// both disable a predicate.
type Filter struct {
	Search   string `json:"search"`
	Employee string `json:"employee"`
	Status   string `json:"status"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Employee != "" && f.Employee != "all" && !validator.IsValidUUID(f.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee must be a user id",
		})
	}

	if f.Status != "" && f.Status != "all" && !attendance.Status(f.Status).Known() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half-day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f Filter) ToStats() stats.TeamFilter {
	tf := stats.TeamFilter{Search: f.Search}
	if f.Employee != "all" {
		tf.UserID = f.Employee
	}
	if f.Status != "all" {
		tf.Status = f.Status
	}
	return tf
}

type TeamRecordResponse struct {
	attendance.AttendanceResponse
	Profiles profile.DisplayName `json:"profiles"`
}

func NewTeamRecordResponses(rows []stats.TeamRow) []TeamRecordResponse {
	out := make([]TeamRecordResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, TeamRecordResponse{
			AttendanceResponse: attendance.NewAttendanceResponse(row.Attendance),
			Profiles:           row.Profile,
		})
	}
	return out
}

type TeamResponse struct {
	Stats   stats.TodayStats     `json:"stats"`
	Records []TeamRecordResponse `json:"records"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	FullName   string  `json:"full_name"`
	EmployeeID *string `json:"employee_id"`
	Department *string `json:"department"`
}

func NewEmployeeResponses(profiles []profile.Profile) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, EmployeeResponse{
			ID:         p.ID,
			UserID:     p.UserID,
			FullName:   p.FullName,
			EmployeeID: p.EmployeeID,
			Department: p.Department,
		})
	}
	return out
}
