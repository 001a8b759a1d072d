package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

// DashboardPath is where callers lacking a permission are sent.
const DashboardPath = "/api/v1/dashboard"

// RequirePermission checks the session role against permission and sends
// callers without it to the dashboard with 303 See Other. A session with
// no role row holds no permissions.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				response.HandleError(w, session.ErrNoSession)
				return
			}

			if sess.Role == nil || !user.HasPermission(*sess.Role, permission) {
				slog.Debug("Permission denied, redirecting",
					"user_id", sess.UserID,
					"permission", permission,
				)
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
