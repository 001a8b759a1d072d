package postgresql_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *database.DB, email string) user.User {
	t.Helper()
	created, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return created
}

// ===== USER / ROLE =====

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	created := createTestUser(t, db, "ann@example.com")
	assert.NotEmpty(t, created.ID)

	byEmail, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	exists, err := repo.ExistsByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, user.User{Email: "ann@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRoleRepository_MissingRowIsNil(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewRoleRepository(db)
	u := createTestUser(t, db, "bob@example.com")

	role, err := repo.GetRole(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, role)

	require.NoError(t, repo.Assign(ctx, u.ID, user.RoleManager))
	role, err = repo.GetRole(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, user.RoleManager, *role)
}

// ===== PROFILE =====

func TestProfileRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewProfileRepository(db)
	u := createTestUser(t, db, "cy@example.com")

	missing, err := repo.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Create(ctx, profile.Profile{UserID: u.ID, FullName: "Cy", Email: u.Email})
	require.NoError(t, err)

	dept := "Ops"
	updated, err := repo.Update(ctx, u.ID, profile.UpdateProfileRequest{FullName: "Cy Young", Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Cy Young", updated.FullName)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Ops", *updated.Department)

	withAvatar, err := repo.UpdateAvatar(ctx, u.ID, "http://x/uploads/a.png")
	require.NoError(t, err)
	require.NotNil(t, withAvatar.AvatarURL)

	list, err := repo.ListByUserIDs(ctx, []string{u.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// ===== ATTENDANCE =====

func TestAttendanceRepository_CheckInCheckOut(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	u := createTestUser(t, db, "dee@example.com")

	in := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	date := attendance.DateOf(in)

	created, err := repo.Create(ctx, attendance.Attendance{
		UserID:      u.ID,
		Date:        date,
		CheckInTime: &in,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Nil(t, created.TotalHours)

	_, err = repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: date, CheckInTime: &in, Status: attendance.StatusPresent})
	assert.True(t, database.IsUniqueViolation(err))

	_, err = repo.SetCheckOut(ctx, created.ID, in.Add(-time.Hour))
	assert.True(t, database.IsCheckViolation(err))

	out, err := repo.SetCheckOut(ctx, created.ID, in.Add(8*time.Hour+30*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, out.TotalHours)
	assert.InDelta(t, 8.5, *out.TotalHours, 0.001)

	_, err = repo.SetCheckOut(ctx, created.ID, in.Add(9*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	found, err := repo.GetByUserAndDate(ctx, u.ID, date)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.CheckOutTime)
	assert.True(t, found.CheckOutTime.Equal(in.Add(8*time.Hour+30*time.Minute)))
}

func TestAttendanceRepository_ConcurrentCheckOut(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	u := createTestUser(t, db, "gil@example.com")

	in := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		UserID: u.ID, Date: attendance.DateOf(in), CheckInTime: &in, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	const writers = 5
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.SetCheckOut(ctx, created.ID, in.Add(time.Duration(8+i)*time.Hour))
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_ListOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	u := createTestUser(t, db, "eve@example.com")

	for d := 1; d <= 3; d++ {
		in := time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: attendance.DateOf(in), CheckInTime: &in, Status: attendance.StatusPresent})
		require.NoError(t, err)
	}

	recent, err := repo.ListByUser(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].Date.Day())
	assert.Equal(t, 2, recent[1].Date.Day())

	between, err := repo.ListBetween(ctx,
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, between, 2)
}

// ===== OPERATION =====

func TestOperationRepository_BatchAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewOperationRepository(db)
	u := createTestUser(t, db, "fay@example.com")

	var ops []*operation.Operation
	for i := 0; i < 3; i++ {
		ops = append(ops, &operation.Operation{
			ActorUserID: &u.ID,
			Action:      operation.ActionCheckIn,
			Metadata:    map[string]interface{}{"n": fmt.Sprint(i)},
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, repo.CreateBatch(ctx, ops))
	require.NoError(t, repo.Create(ctx, &operation.Operation{Action: operation.ActionSignUp}))

	all, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := repo.ListByActor(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2", mine[0].Metadata["n"])
}

// ===== REFRESH TOKENS =====

func TestRefreshTokenRepository_Revoke(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewRefreshTokenRepository(db)
	u := createTestUser(t, db, "gus@example.com")

	exp := time.Now().Add(time.Hour).Unix()
	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "tok", exp, auth.SessionTrackingRequest{}))

	owner, revoked, err := repo.IsRefreshTokenRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "tok"))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, repo.CreateRefreshToken(ctx, u.ID, "old", time.Now().Add(-time.Hour).Unix(), auth.SessionTrackingRequest{}))
	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
