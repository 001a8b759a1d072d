package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type TeamHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type teamHandlerImpl struct {
	teamService team.TeamService
}

func NewTeamHandler(teamService team.TeamService) TeamHandler {
	return &teamHandlerImpl{
		teamService: teamService,
	}
}

func filterFromQuery(r *http.Request) team.Filter {
	q := r.URL.Query()
	return team.Filter{
		Search:   q.Get("search"),
		Employee: q.Get("employee"),
		Status:   q.Get("status"),
	}
}

// List implements TeamHandler. Query: search, employee, status.
func (h *teamHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := filterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.teamService.Search(r.Context(), sess, filter)
	if err != nil {
		if degraded(err, sess.UserID) {
			response.Success(w, team.TeamResponse{Records: []team.TeamRecordResponse{}})
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Employees implements TeamHandler.
func (h *teamHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	employees, err := h.teamService.Employees(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Export implements TeamHandler. The CSV is buffered so a failure can
// still be reported as a JSON error.
func (h *teamHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := filterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	filename, err := h.teamService.Export(r.Context(), sess, filter, &buf)
	if err != nil {
		slog.Error("Team export failed", "user_id", sess.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write CSV export", "error", err)
	}
}
