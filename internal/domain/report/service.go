package report

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
)

type ReportService interface {
	// Monthly is manager only.
	Monthly(ctx context.Context, sess session.Session, month string) (MonthlyReportResponse, error)
	History(ctx context.Context, sess session.Session, month string) (HistoryResponse, error)
	Dashboard(ctx context.Context, sess session.Session) (DashboardResponse, error)
}
