package operation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu        sync.Mutex
	written   []*operation.Operation
	fail      error
	listedAll bool
	actor     string
}

func (f *fakeRepo) Create(ctx context.Context, op *operation.Operation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.written = append(f.written, op)
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, ops []*operation.Operation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.written = append(f.written, ops...)
	return nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit int) ([]operation.Operation, error) {
	f.listedAll = true
	return []operation.Operation{{ID: "a"}}, nil
}

func (f *fakeRepo) ListByActor(ctx context.Context, actorUserID string, limit int) ([]operation.Operation, error) {
	f.actor = actorUserID
	return nil, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func TestLog_FlushesOnStop(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewOperationService(repo, Config{FlushInterval: time.Hour, WorkerCount: 1})

	actor := "u1"
	for i := 0; i < 3; i++ {
		svc.Log(context.Background(), operation.LogRequest{ActorUserID: &actor, Action: operation.ActionCheckIn})
	}
	svc.Stop()

	require.Equal(t, 3, repo.count())
	for _, op := range repo.written {
		assert.NotEmpty(t, op.ID)
		assert.NotNil(t, op.Metadata)
	}
}

func TestLog_BatchSizeTriggersWrite(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewOperationService(repo, Config{BatchSize: 2, FlushInterval: time.Hour, WorkerCount: 1})
	defer svc.Stop()

	svc.Log(context.Background(), operation.LogRequest{Action: operation.ActionCheckOut})
	svc.Log(context.Background(), operation.LogRequest{Action: operation.ActionCheckOut})

	assert.Eventually(t, func() bool { return repo.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestLog_FailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{fail: errors.New("store down")}
	svc := NewOperationService(repo, Config{FlushInterval: 10 * time.Millisecond, WorkerCount: 1})

	assert.NotPanics(t, func() {
		svc.Log(context.Background(), operation.LogRequest{Action: operation.ActionUpdateProfile})
	})
	svc.Stop()
	assert.Equal(t, 0, repo.count())
}

func TestLog_AfterStopWritesDirectly(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewOperationService(repo, Config{WorkerCount: 1})
	svc.Stop()

	svc.Log(context.Background(), operation.LogRequest{Action: operation.ActionUpdateAvatar})
	assert.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestFetch_ScopedByRole(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewOperationService(repo, Config{WorkerCount: 1})
	defer svc.Stop()

	employee := user.RoleEmployee
	ops, err := svc.Fetch(context.Background(), session.Session{UserID: "e1", Role: &employee}, 0)
	require.NoError(t, err)
	assert.Empty(t, ops)
	assert.NotNil(t, ops)
	assert.Equal(t, "e1", repo.actor)
	assert.False(t, repo.listedAll)

	manager := user.RoleManager
	ops, err = svc.Fetch(context.Background(), session.Session{UserID: "m1", Role: &manager}, 0)
	require.NoError(t, err)
	assert.Len(t, ops, 1)
	assert.True(t, repo.listedAll)
}
