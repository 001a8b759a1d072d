package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Week(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// degraded reports whether err is a read failure that should be served as
// empty data. It logs the failure.
func degraded(err error, userID string) bool {
	if errors.Is(err, attendance.ErrFetchFailed) {
		slog.Warn("Attendance read failed, serving empty result", "user_id", userID, "error", err)
		return true
	}
	return false
}

// Today implements AttendanceHandler. It returns today's record alongside
// the recent history so the page renders from one call.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	resp := attendance.TodayResponse{History: []attendance.AttendanceResponse{}}

	today, err := h.attendanceService.FetchToday(r.Context(), sess)
	if err != nil && !degraded(err, sess.UserID) {
		response.HandleError(w, err)
		return
	}
	if today != nil {
		t := attendance.NewAttendanceResponse(*today)
		resp.Today = &t
	}

	history, err := h.attendanceService.FetchHistory(r.Context(), sess, attendance.DefaultHistoryLimit)
	if err != nil && !degraded(err, sess.UserID) {
		response.HandleError(w, err)
		return
	}
	if err == nil {
		resp.History = attendance.NewAttendanceResponses(history)
	}

	response.Success(w, resp)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	limit := getIntQueryParam(r, "limit", attendance.DefaultHistoryLimit)
	history, err := h.attendanceService.FetchHistory(r.Context(), sess, limit)
	if err != nil {
		if degraded(err, sess.UserID) {
			response.Success(w, []attendance.AttendanceResponse{})
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewAttendanceResponses(history))
}

// Week implements AttendanceHandler.
func (h *attendanceHandlerImpl) Week(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	week, err := h.attendanceService.Week(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, week)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), sess)
	if err != nil {
		slog.Error("CheckIn service error", "user_id", sess.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User checked in", "user_id", sess.UserID, "status", result.Today.Status)
	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), sess)
	if err != nil {
		slog.Error("CheckOut service error", "user_id", sess.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	if result.Today == nil {
		response.SuccessWithMessage(w, "No check-in recorded today", result)
		return
	}

	slog.Info("User checked out", "user_id", sess.UserID)
	response.SuccessWithMessage(w, "Checked out successfully", result)
}
