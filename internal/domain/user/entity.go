package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Records own attendance
	RoleManager  Role = "manager"  // Sees the whole team
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
