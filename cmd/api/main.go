package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
	operationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/operation"
	profileService "github.com/cmlabs-hris/attendance-backend-go/internal/service/profile"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	sessionService "github.com/cmlabs-hris/attendance-backend-go/internal/service/session"
	teamService "github.com/cmlabs-hris/attendance-backend-go/internal/service/team"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

func newRevocationStore(ctx context.Context, cfg *config.Config) (cache.RevocationStore, error) {
	addr := cfg.RedisAddr()
	if addr == "" {
		slog.Info("Redis not configured, using in-memory token revocation")
		return cache.NewMemoryStore(), nil
	}
	store, err := cache.NewRedisStore(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	slog.Info("Using Redis token revocation", "addr", addr)
	return store, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	revoked, err := newRevocationStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer revoked.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}

	// Repositories
	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	operationRepo := postgresql.NewOperationRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, revoked, cfg.App.Env == "production")
	hub := sse.NewHub(16)
	sessions := sessionService.NewProvider(roleRepo, profileRepo, hub, sessionService.Config{
		IdleTimeout: cfg.Session.IdleTimeout,
	})
	operations := operationService.NewOperationService(operationRepo, operationService.Config{})
	fileService := file.NewFileService(fileStorage)

	authSvc := serviceAuth.NewAuthService(
		transactor,
		userRepo,
		roleRepo,
		profileRepo,
		JWTService,
		refreshTokenRepo,
		sessions,
		operations,
		cfg.App.FrontendURL,
	)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, operations, loc)
	teamSvc := teamService.NewTeamService(attendanceRepo, profileRepo, loc)
	reportSvc := reportService.NewReportService(attendanceRepo, profileRepo, teamSvc, loc)
	profileSvc := profileService.NewProfileService(profileRepo, fileService, operations, sessions)

	// Background jobs
	scheduler := cron.NewScheduler(time.Minute)
	cron.NewMaintenanceJobs(sessions, revoked, refreshTokenRepo).RegisterJobs(scheduler, cfg.Session.SweepInterval)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsDir:     fileStorage.BasePath(),
	}, JWTService, sessions, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc, sessions),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Team:       appHTTP.NewTeamHandler(teamSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Profile:    appHTTP.NewProfileHandler(profileSvc),
		Operation:  appHTTP.NewOperationHandler(operations),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Zero so the auth-state stream is not cut off
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	// Open event streams would otherwise hold Shutdown until its timeout
	server.RegisterOnShutdown(hub.Close)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	scheduler.Stop()
	operations.Stop()
	sessions.Stop()

	slog.Info("Server stopped")
	return nil
}
