package team

import (
	"context"
	"io"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/stats"
)

// TeamService reads attendance across all users. Every method rejects
// callers without the manager role.
type TeamService interface {
	FetchAll(ctx context.Context, sess session.Session, limit int) ([]stats.TeamRow, error)
	Search(ctx context.Context, sess session.Session, filter Filter) (TeamResponse, error)
	Employees(ctx context.Context, sess session.Session) ([]EmployeeResponse, error)

	// Export writes the filtered rows as CSV and returns the download name.
	Export(ctx context.Context, sess session.Session, filter Filter, w io.Writer) (string, error)
}
