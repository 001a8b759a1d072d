package user

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      *string `json:"role"`
	CreatedAt string  `json:"created_at,omitempty"`
}
