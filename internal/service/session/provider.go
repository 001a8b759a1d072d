package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

// Config holds session provider configuration
type Config struct {
	IdleTimeout    time.Duration // default: 30 minutes
	ResolveTimeout time.Duration // default: 10 seconds
	WorkerCount    int           // default: 2
	QueueSize      int           // default: 256
}

type entry struct {
	gen      uint64
	state    session.State
	identity session.Identity
	lastSeen time.Time
}

type task struct {
	identity session.Identity
	gen      uint64
}

type provider struct {
	roles    user.RoleRepository
	profiles profile.ProfileRepository
	hub      *sse.Hub
	config   Config

	mu      sync.RWMutex
	entries map[string]*entry
	seq     uint64

	queue   chan task
	stopCh  chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool
	once    sync.Once

	now func() time.Time
}

// NewProvider creates the process-wide session provider and starts its
// resolution workers.
func NewProvider(roles user.RoleRepository, profiles profile.ProfileRepository, hub *sse.Hub, cfg Config) session.Provider {
	return newProvider(roles, profiles, hub, cfg)
}

func newProvider(roles user.RoleRepository, profiles profile.ProfileRepository, hub *sse.Hub, cfg Config) *provider {
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if cfg.ResolveTimeout == 0 {
		cfg.ResolveTimeout = 10 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	if hub == nil {
		hub = sse.NewHub(0)
	}

	p := &provider{
		roles:    roles,
		profiles: profiles,
		hub:      hub,
		config:   cfg,
		entries:  make(map[string]*entry),
		queue:    make(chan task, cfg.QueueSize),
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Open implements session.Provider.
func (p *provider) Open(ctx context.Context, id session.Identity) (session.Session, error) {
	p.mu.Lock()
	e, ok := p.entries[id.UserID]
	if ok && e.state.Session != nil {
		e.lastSeen = p.now()
		sess := *e.state.Session
		p.mu.Unlock()
		return sess, nil
	}
	if !ok {
		e = p.begin(id)
	}
	gen := e.gen
	p.mu.Unlock()

	sess, err := p.resolve(ctx, id)
	if err != nil {
		p.abandon(id.UserID, gen)
		return session.Session{}, err
	}

	if applied := p.apply(id.UserID, gen, sess); !applied {
		// A newer sign-in or sign-out won; serve whatever it left behind.
		if st, ok := p.State(id.UserID); ok && st.Session != nil {
			return *st.Session, nil
		}
		return session.Session{}, session.ErrNoSession
	}
	return sess, nil
}

// Notify implements session.Provider.
func (p *provider) Notify(id session.Identity, event string) {
	switch event {
	case session.EventSignedIn:
		p.mu.Lock()
		e := p.begin(id)
		gen := e.gen
		st := e.state
		p.mu.Unlock()

		p.hub.Publish(id.UserID, session.EventSignedIn, session.NewStatePayload(id.UserID, st))
		p.enqueue(task{identity: id, gen: gen})
	case session.EventSignedOut:
		p.Close(id.UserID)
	default:
		slog.Debug("Ignoring unknown auth event", "event", event, "user_id", id.UserID)
	}
}

// Refresh implements session.Provider.
func (p *provider) Refresh(userID string) {
	p.mu.Lock()
	e, ok := p.entries[userID]
	if !ok {
		p.mu.Unlock()
		return
	}
	p.seq++
	e.gen = p.seq
	t := task{identity: e.identity, gen: e.gen}
	p.mu.Unlock()

	p.enqueue(t)
}

// Close implements session.Provider.
func (p *provider) Close(userID string) {
	p.mu.Lock()
	delete(p.entries, userID)
	p.mu.Unlock()

	p.hub.Publish(userID, session.EventSignedOut, session.NewStatePayload(userID, session.State{}))
}

// State implements session.Provider.
func (p *provider) State(userID string) (session.State, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	e, ok := p.entries[userID]
	if !ok {
		return session.State{}, false
	}
	return copyState(e.state), true
}

// Subscribe implements session.Provider.
func (p *provider) Subscribe(userID string) (chan sse.Event, func()) {
	return p.hub.Subscribe(userID)
}

// Sweep implements session.Provider.
func (p *provider) Sweep(ctx context.Context) error {
	cutoff := p.now().Add(-p.config.IdleTimeout)

	p.mu.Lock()
	removed := 0
	for userID, e := range p.entries {
		// An open event stream keeps the session alive
		if e.state.Loading || p.hub.SubscriberCount(userID) > 0 {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(p.entries, userID)
			removed++
		}
	}
	remaining := len(p.entries)
	p.mu.Unlock()

	if removed > 0 {
		slog.Info("Idle sessions swept", "removed", removed, "remaining", remaining)
	}
	return ctx.Err()
}

// Stop drains in-flight resolutions and stops the workers
func (p *provider) Stop() {
	p.once.Do(func() {
		p.stopped.Store(true)
		close(p.stopCh)
		p.wg.Wait()
		slog.Info("Session provider stopped")
	})
}

// begin starts a new generation for id in the loading state. Callers hold mu.
func (p *provider) begin(id session.Identity) *entry {
	p.seq++
	e := &entry{
		gen:      p.seq,
		state:    session.State{Loading: true},
		identity: id,
		lastSeen: p.now(),
	}
	p.entries[id.UserID] = e
	return e
}

// apply stores sess only if gen is still the user's current generation.
func (p *provider) apply(userID string, gen uint64, sess session.Session) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[userID]
	if !ok || e.gen != gen {
		return false
	}
	e.state = session.State{Loading: false, Session: &sess}
	e.lastSeen = p.now()
	return true
}

// abandon drops a loading entry whose resolution failed so the next Open
// retries. A refresh failure keeps the previous session.
func (p *provider) abandon(userID string, gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[userID]
	if !ok || e.gen != gen {
		return
	}
	if e.state.Session == nil {
		delete(p.entries, userID)
	}
}

func (p *provider) enqueue(t task) {
	if !p.stopped.Load() {
		select {
		case p.queue <- t:
			return
		default:
		}
	}
	slog.Warn("Session queue unavailable, dropping resolution", "user_id", t.identity.UserID)
	p.abandon(t.identity.UserID, t.gen)
}

func (p *provider) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case t := <-p.queue:
			p.run(id, t)
		case <-p.stopCh:
			return
		}
	}
}

func (p *provider) run(worker int, t task) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.ResolveTimeout)
	defer cancel()

	sess, err := p.resolve(ctx, t.identity)
	if err != nil {
		slog.Error("Session resolution failed",
			"worker", worker,
			"user_id", t.identity.UserID,
			"error", err,
		)
		p.abandon(t.identity.UserID, t.gen)
		return
	}

	if !p.apply(t.identity.UserID, t.gen, sess) {
		slog.Debug("Discarding stale session resolution", "user_id", t.identity.UserID)
		return
	}
	p.hub.Publish(t.identity.UserID, session.EventSessionReady,
		session.NewStatePayload(t.identity.UserID, session.State{Session: &sess}))
}

// resolve loads role and profile in parallel. Missing rows leave the
// corresponding field nil.
func (p *provider) resolve(ctx context.Context, id session.Identity) (session.Session, error) {
	sess := session.Session{UserID: id.UserID, Email: id.Email}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		role, err := p.roles.GetRole(gctx, id.UserID)
		if err != nil {
			return fmt.Errorf("role: %w", err)
		}
		sess.Role = role
		return nil
	})
	g.Go(func() error {
		prof, err := p.profiles.GetByUserID(gctx, id.UserID)
		if err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		sess.Profile = prof
		return nil
	})

	if err := g.Wait(); err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", session.ErrResolveFailed, err)
	}
	return sess, nil
}

func copyState(st session.State) session.State {
	if st.Session == nil {
		return st
	}
	sess := *st.Session
	return session.State{Loading: st.Loading, Session: &sess}
}
