package auth

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type SignUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Role     *string `json:"role"`

	// Origin is set by the handler from the request, not the body.
	Origin string `json:"-"`
}

// RoleOrDefault returns the requested role, defaulting to employee.
func (r *SignUpRequest) RoleOrDefault() user.Role {
	if r.Role == nil || *r.Role == "" {
		return user.RoleEmployee
	}
	return user.Role(*r.Role)
}

func (r *SignUpRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !r.RoleOrDefault().Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee or manager",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionTrackingRequest is stored alongside each refresh token.
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
}

type SignUpResponse struct {
	TokenResponse
	UserID     string `json:"user_id"`
	RedirectTo string `json:"redirect_to"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

// SignOutRequest carries both tokens so each can be revoked.
type SignOutRequest struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

type SessionResponse struct {
	Loading bool                    `json:"loading"`
	User    *user.UserResponse      `json:"user"`
	Profile *ProfileSummaryResponse `json:"profile"`
}

// NewSessionResponse renders a provider state. User and Profile stay null
// while loading or when the corresponding data is missing.
func NewSessionResponse(st session.State) SessionResponse {
	resp := SessionResponse{Loading: st.Loading}
	if st.Session == nil {
		return resp
	}
	resp.User = &user.UserResponse{
		ID:    st.Session.UserID,
		Email: st.Session.Email,
		Role:  st.Session.RoleString(),
	}
	if p := st.Session.Profile; p != nil {
		resp.Profile = &ProfileSummaryResponse{
			FullName:   p.FullName,
			EmployeeID: p.EmployeeID,
			Department: p.Department,
			AvatarURL:  p.AvatarURL,
		}
	}
	return resp
}

type ProfileSummaryResponse struct {
	FullName   string  `json:"full_name"`
	EmployeeID *string `json:"employee_id"`
	Department *string `json:"department"`
	AvatarURL  *string `json:"avatar_url"`
}

// SSETokenResponse is a short-lived token for the auth-state stream, which
// cannot carry an Authorization header.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
