package operation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/google/uuid"
)

// Config holds operation log configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   operation.Repository
	config Config

	queue   chan *operation.Operation
	wg      sync.WaitGroup
	stopCh  chan struct{}
	stopped atomic.Bool
	once    sync.Once
}

// NewOperationService creates the operation log with background batch writers
func NewOperationService(repo operation.Repository, cfg Config) operation.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		config: cfg,
		queue:  make(chan *operation.Operation, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Operation log started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*operation.Operation, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			slog.Error("Failed to write operations",
				"worker", id,
				"count", len(batch),
				"error", fmt.Errorf("%w: %v", operation.ErrAuditLogFailed, err),
			)
		} else {
			slog.Debug("Operations written", "worker", id, "count", len(batch))
		}

		batch = make([]*operation.Operation, 0, s.config.BatchSize)
	}

	for {
		select {
		case op := <-s.queue:
			batch = append(batch, op)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// drain what is already queued before exiting
			for {
				select {
				case op := <-s.queue:
					batch = append(batch, op)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Log implements operation.Service.
func (s *service) Log(ctx context.Context, req operation.LogRequest) {
	op := &operation.Operation{
		ID:           uuid.New().String(),
		ActorUserID:  req.ActorUserID,
		TargetUserID: req.TargetUserID,
		Action:       req.Action,
		Metadata:     req.Metadata,
		CreatedAt:    time.Now(),
	}
	if op.Metadata == nil {
		op.Metadata = map[string]interface{}{}
	}

	if !s.stopped.Load() {
		select {
		case s.queue <- op:
			return
		default:
		}
	}

	// Queue full or workers gone: write in the background so the caller
	// never waits on the store.
	go s.directInsert(context.WithoutCancel(ctx), op)
}

func (s *service) directInsert(ctx context.Context, op *operation.Operation) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.repo.Create(ctx, op); err != nil {
		slog.Error("Failed to write operation",
			"action", op.Action,
			"error", fmt.Errorf("%w: %v", operation.ErrAuditLogFailed, err),
		)
	}
}

// Fetch implements operation.Service.
func (s *service) Fetch(ctx context.Context, sess session.Session, limit int) ([]operation.Operation, error) {
	if limit <= 0 {
		limit = operation.DefaultLimit
	}

	var (
		ops []operation.Operation
		err error
	)
	if sess.IsManager() {
		ops, err = s.repo.ListRecent(ctx, limit)
	} else {
		ops, err = s.repo.ListByActor(ctx, sess.UserID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operations: %w", err)
	}
	if ops == nil {
		ops = []operation.Operation{}
	}
	return ops, nil
}

// Stop flushes queued entries and stops the workers
func (s *service) Stop() {
	s.once.Do(func() {
		s.stopped.Store(true)
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Operation log stopped")
	})
}
