package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RoleRepository reads and assigns the single role row of a user.
// GetRole returns nil, nil when the user has no role row.
type RoleRepository interface {
	GetRole(ctx context.Context, userID string) (*Role, error)
	Assign(ctx context.Context, userID string, role Role) error
}
