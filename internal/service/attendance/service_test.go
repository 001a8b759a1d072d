package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

// memRepo stores records keyed by user and date and enforces the same
// uniqueness and ordering constraints as the database.
type memRepo struct {
	mu        sync.Mutex
	records   []attendance.Attendance
	createErr error
	listErr   error
	hours     float64

	// readBarrier, when set, holds every GetByUserAndDate until all
	// expected readers have arrived.
	readBarrier *sync.WaitGroup
}

func (m *memRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	m.mu.Lock()
	found := m.find(userID, date)
	m.mu.Unlock()

	if m.readBarrier != nil {
		m.readBarrier.Done()
		m.readBarrier.Wait()
	}
	return found, nil
}

func (m *memRepo) find(userID string, date time.Time) *attendance.Attendance {
	for i := range m.records {
		if m.records[i].UserID == userID && m.records[i].Date.Equal(date) {
			r := m.records[i]
			return &r
		}
	}
	return nil
}

func (m *memRepo) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, r := range m.records {
		if r.UserID == userID {
			out = append([]attendance.Attendance{r}, out...)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) ListRecent(ctx context.Context, limit int) ([]attendance.Attendance, error) {
	return m.records, nil
}

func (m *memRepo) ListBetween(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	return m.records, nil
}

func (m *memRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if m.createErr != nil {
		return attendance.Attendance{}, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing := m.find(a.UserID, a.Date); existing != nil {
		return attendance.Attendance{}, &pgconn.PgError{Code: "23505"}
	}
	a.ID = "att-" + a.Date.Format(attendance.DateLayout)
	m.records = append(m.records, a)
	return a, nil
}

func (m *memRepo) SetCheckOut(ctx context.Context, id string, at time.Time) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			if m.records[i].CheckOutTime != nil {
				return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
			}
			m.records[i].CheckOutTime = &at
			h := m.hours
			m.records[i].TotalHours = &h
			return m.records[i], nil
		}
	}
	return attendance.Attendance{}, errors.New("not found")
}

type recordingOps struct {
	mu   sync.Mutex
	logs []operation.LogRequest
}

func (r *recordingOps) Fetch(ctx context.Context, sess session.Session, limit int) ([]operation.Operation, error) {
	return nil, nil
}

func (r *recordingOps) Log(ctx context.Context, req operation.LogRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, req)
}

func (r *recordingOps) Stop() {}

func newTestService(repo *memRepo, ops *recordingOps, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo, ops, wib).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

var sess = session.Session{UserID: "u1", Email: "u1@example.com"}

func TestCheckIn_OnTimeAndLate(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want attendance.Status
	}{
		{"nine thirty local is on time", time.Date(2024, 3, 4, 2, 30, 0, 0, time.UTC), attendance.StatusPresent},
		{"ten local is late", time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC), attendance.StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memRepo{}
			ops := &recordingOps{}
			svc := newTestService(repo, ops, tc.now)

			resp, err := svc.CheckIn(context.Background(), sess)
			require.NoError(t, err)
			require.NotNil(t, resp.Today)
			assert.Equal(t, string(tc.want), resp.Today.Status)
			assert.Equal(t, "2024-03-04", resp.Today.Date)
			assert.Len(t, resp.History, 1)

			require.Len(t, ops.logs, 1)
			assert.Equal(t, operation.ActionCheckIn, ops.logs[0].Action)
		})
	}
}

func TestCheckIn_UsesLocalDate(t *testing.T) {
	repo := &memRepo{}
	// 2024-03-04 20:00 UTC is already 03:00 on the 5th in WIB
	svc := newTestService(repo, &recordingOps{}, time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", resp.Today.Date)
}

func TestCheckIn_Duplicate(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo, &recordingOps{}, time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), sess)
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
	assert.Len(t, repo.records, 1)
}

func TestCheckIn_GenericWriteFailure(t *testing.T) {
	repo := &memRepo{createErr: errors.New("connection reset")}
	ops := &recordingOps{}
	svc := newTestService(repo, ops, time.Now())

	_, err := svc.CheckIn(context.Background(), sess)
	assert.ErrorIs(t, err, attendance.ErrWriteFailed)
	assert.NotErrorIs(t, err, attendance.ErrDuplicateCheckIn)
	assert.Empty(t, ops.logs)
}

func TestCheckIn_HistoryFailureDegrades(t *testing.T) {
	repo := &memRepo{listErr: errors.New("timeout")}
	svc := newTestService(repo, &recordingOps{}, time.Now())

	resp, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)
	assert.NotNil(t, resp.Today)
	assert.NotNil(t, resp.History)
	assert.Empty(t, resp.History)
}

func TestCheckOut(t *testing.T) {
	in := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	repo := &memRepo{hours: 8}
	ops := &recordingOps{}
	svc := newTestService(repo, ops, in)

	_, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)

	svc.now = func() time.Time { return in.Add(8 * time.Hour) }
	resp, err := svc.CheckOut(context.Background(), sess)
	require.NoError(t, err)
	require.NotNil(t, resp.Today)
	require.NotNil(t, resp.Today.CheckOutTime)
	require.NotNil(t, resp.Today.TotalHours)
	assert.Equal(t, 8.0, *resp.Today.TotalHours)

	_, err = svc.CheckOut(context.Background(), sess)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	require.Len(t, ops.logs, 2)
	assert.Equal(t, operation.ActionCheckOut, ops.logs[1].Action)
}

func TestCheckOut_ConcurrentKeepsFirst(t *testing.T) {
	in := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	repo := &memRepo{hours: 8}
	svc := newTestService(repo, &recordingOps{}, in)

	_, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)

	// Both requests read the open record before either writes
	repo.readBarrier = &sync.WaitGroup{}
	repo.readBarrier.Add(2)
	svc.now = func() time.Time { return in.Add(8 * time.Hour) }

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckOut(context.Background(), sess)
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
}

func TestCheckOut_NoRecordIsNoop(t *testing.T) {
	repo := &memRepo{}
	ops := &recordingOps{}
	svc := newTestService(repo, ops, time.Now())

	resp, err := svc.CheckOut(context.Background(), sess)
	require.NoError(t, err)
	assert.Nil(t, resp.Today)
	assert.Empty(t, ops.logs)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	in := time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC)
	repo := &memRepo{}
	svc := newTestService(repo, &recordingOps{}, in)

	_, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)

	svc.now = func() time.Time { return in.Add(-time.Hour) }
	_, err = svc.CheckOut(context.Background(), sess)
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestWeek_MondayStart(t *testing.T) {
	// Wednesday 2024-03-06 in WIB
	now := time.Date(2024, 3, 6, 2, 0, 0, 0, time.UTC)
	repo := &memRepo{}
	svc := newTestService(repo, &recordingOps{}, now)

	_, err := svc.CheckIn(context.Background(), sess)
	require.NoError(t, err)

	days, err := svc.Week(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2024-03-04", days[0].Date)
	assert.Equal(t, "Mon", days[0].Weekday)
	assert.True(t, days[2].IsToday)
	require.NotNil(t, days[2].Status)
	assert.Equal(t, "present", *days[2].Status)
	assert.True(t, days[6].IsFuture)
}
