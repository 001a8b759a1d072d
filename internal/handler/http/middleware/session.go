package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// LoadSession resolves the caller's session through the provider and
// stores it on the request context. It must run after AuthRequired.
func LoadSession(provider session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, _ := jwtauth.FromContext(r.Context())

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			email, _ := claims["email"].(string)

			sess, err := provider.Open(r.Context(), session.Identity{UserID: userID, Email: email})
			if err != nil {
				slog.Error("Failed to open session", "user_id", userID, "error", err)
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}
