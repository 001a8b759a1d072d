package attendance

import (
	"time"
)

const (
	DefaultHistoryLimit = 30
	DateLayout          = "2006-01-02"
)

type AttendanceResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	Date         string   `json:"date"`
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	Status       string   `json:"status"`
	TotalHours   *float64 `json:"total_hours"`
	Notes        *string  `json:"notes"`
	CreatedAt    string   `json:"created_at"`
}

// timePtrToString formats an optional timestamp as RFC3339.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Date:         a.Date.Format(DateLayout),
		CheckInTime:  timePtrToString(a.CheckInTime),
		CheckOutTime: timePtrToString(a.CheckOutTime),
		Status:       string(a.Status),
		TotalHours:   a.TotalHours,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewAttendanceResponse(r))
	}
	return out
}

// TodayResponse is what the attendance page needs after every call:
// today's record (possibly null) and the refetched history.
type TodayResponse struct {
	Today   *AttendanceResponse  `json:"today"`
	History []AttendanceResponse `json:"history"`
}

// WeekDayResponse is one cell of the Monday-start week strip.
type WeekDayResponse struct {
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	Status   *string `json:"status"`
	IsToday  bool    `json:"is_today"`
	IsFuture bool    `json:"is_future"`
}
