package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, user_id, full_name, email, employee_id, department, avatar_url, created_at, updated_at`

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email,
		&p.EmployeeID, &p.Department, &p.AvatarURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func collectProfiles(rows pgx.Rows) ([]profile.Profile, error) {
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// ListByUserIDs implements profile.ProfileRepository.
func (r *profileRepositoryImpl) ListByUserIDs(ctx context.Context, userIDs []string) ([]profile.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ANY($1::uuid[])`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return collectProfiles(rows)
}

// List implements profile.ProfileRepository.
func (r *profileRepositoryImpl) List(ctx context.Context) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY full_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return collectProfiles(rows)
}

// Count implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// Create implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (user_id, full_name, email, employee_id, department, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileColumns

	created, err := scanProfile(q.QueryRow(ctx, query,
		p.UserID, p.FullName, p.Email, p.EmployeeID, p.Department, p.AvatarURL,
	))
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}

// Update implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Update(ctx context.Context, userID string, req profile.UpdateProfileRequest) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET full_name = $2,
		    department = $3,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	updated, err := scanProfile(q.QueryRow(ctx, query, userID, req.FullName, req.Department))
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}

// UpdateAvatar implements profile.ProfileRepository.
func (r *profileRepositoryImpl) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET avatar_url = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns

	updated, err := scanProfile(q.QueryRow(ctx, query, userID, avatarURL))
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to update avatar: %w", err)
	}
	return updated, nil
}
