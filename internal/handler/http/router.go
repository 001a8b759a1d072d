package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string

	// UploadsDir is served read-only under /uploads. Empty disables it.
	UploadsDir string
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Team       TeamHandler
	Report     ReportHandler
	Profile    ProfileHandler
	Operation  OperationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, sessions session.Provider, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  cfg.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", h.Auth.SignUp)
			r.Post("/sign-in", h.Auth.SignIn)
			r.Post("/refresh", h.Auth.RefreshToken)

			// Authenticated by the short-lived token in the query string
			r.Get("/events", h.Auth.Events)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/sign-out", h.Auth.SignOut)
			r.Get("/auth/sse-token", h.Auth.GetSSEToken)

			r.Group(func(r chi.Router) {
				r.Use(middleware.LoadSession(sessions))

				r.Get("/auth/session", h.Auth.Session)
				r.Get("/dashboard", h.Report.Dashboard)
				r.Get("/operations", h.Operation.List)

				r.Route("/profile", func(r chi.Router) {
					r.Get("/", h.Profile.Get)
					r.Put("/", h.Profile.Update)
					r.Post("/avatar", h.Profile.UploadAvatar)
				})

				// Employee only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/history", h.Report.History)

					r.Route("/attendance", func(r chi.Router) {
						r.Get("/today", h.Attendance.Today)
						r.Get("/history", h.Attendance.History)
						r.Get("/week", h.Attendance.Week)

						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionAttendanceRecord))
							r.Post("/check-in", h.Attendance.CheckIn)
							r.Post("/check-out", h.Attendance.CheckOut)
						})
					})
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))

					r.Route("/team", func(r chi.Router) {
						r.Get("/", h.Team.List)
						r.Get("/employees", h.Team.Employees)
						r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).
							Get("/export", h.Team.Export)
					})

					r.With(middleware.RequirePermission(user.PermissionReportsView)).
						Get("/reports", h.Report.Monthly)
				})
			})
		})
	})
	return r
}
