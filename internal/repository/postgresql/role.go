package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

// GetRole implements user.RoleRepository.
func (r *roleRepositoryImpl) GetRole(ctx context.Context, userID string) (*user.Role, error) {
	q := GetQuerier(ctx, r.db)

	var role user.Role
	err := q.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

// Assign implements user.RoleRepository.
func (r *roleRepositoryImpl) Assign(ctx context.Context, userID string, role user.Role) error {
	if !role.Valid() {
		return user.ErrInvalidRole
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`
	if _, err := q.Exec(ctx, query, userID, string(role)); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}
