package operation

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
)

type Service interface {
	// Fetch returns every operation for managers and the caller's own otherwise.
	Fetch(ctx context.Context, sess session.Session, limit int) ([]Operation, error)

	// Log appends an entry best-effort. It never blocks on the store and
	// never reports failure.
	Log(ctx context.Context, req LogRequest)

	Stop()
}
