package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
)

// MaintenanceJobs expires in-memory sessions, revoked tokens and stale
// refresh tokens.
type MaintenanceJobs struct {
	sessions      session.Provider
	revoked       cache.RevocationStore
	refreshTokens auth.RefreshTokenRepository
}

func NewMaintenanceJobs(sessions session.Provider, revoked cache.RevocationStore, refreshTokens auth.RefreshTokenRepository) *MaintenanceJobs {
	return &MaintenanceJobs{
		sessions:      sessions,
		revoked:       revoked,
		refreshTokens: refreshTokens,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler, sessionSweep time.Duration) {
	scheduler.AddJob("sweep_idle_sessions", sessionSweep, j.SweepSessions)
	scheduler.AddJob("sweep_revoked_tokens", 10*time.Minute, j.SweepRevokedTokens)
	scheduler.AddJob("purge_expired_refresh_tokens", 6*time.Hour, j.PurgeRefreshTokens)
}

func (j *MaintenanceJobs) SweepSessions(ctx context.Context) error {
	return j.sessions.Sweep(ctx)
}

func (j *MaintenanceJobs) SweepRevokedTokens(ctx context.Context) error {
	removed, err := j.revoked.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep revoked tokens: %w", err)
	}
	if removed > 0 {
		slog.Info("Revoked tokens expired", "count", removed)
	}
	return nil
}

func (j *MaintenanceJobs) PurgeRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Expired refresh tokens purged", "count", deleted)
	}
	return nil
}
