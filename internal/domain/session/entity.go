package session

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// Auth-state events pushed to subscribers.
const (
	EventSignedIn     = "signed_in"
	EventSessionReady = "session_ready"
	EventSignedOut    = "signed_out"
)

// Identity is what a verified access token tells us about the caller.
type Identity struct {
	UserID string
	Email  string
}

// Session is the resolved view of a signed-in user. Role and Profile are
// nil when the corresponding row does not exist.
type Session struct {
	UserID  string
	Email   string
	Role    *user.Role
	Profile *profile.Profile
}

func (s Session) HasRole(role user.Role) bool {
	return s.Role != nil && *s.Role == role
}

func (s Session) IsManager() bool {
	return s.HasRole(user.RoleManager)
}

// RoleString returns the role as a nullable string for responses.
func (s Session) RoleString() *string {
	if s.Role == nil {
		return nil
	}
	r := string(*s.Role)
	return &r
}

// State is what the provider exposes per user. Session is nil while
// Loading or after sign-out.
type State struct {
	Loading bool     `json:"loading"`
	Session *Session `json:"-"`
}
