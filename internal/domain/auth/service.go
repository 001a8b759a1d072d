package auth

import (
	"context"
)

type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest, track SessionTrackingRequest) (SignUpResponse, error)
	SignIn(ctx context.Context, req SignInRequest, track SessionTrackingRequest) (TokenResponse, error)
	SignOut(ctx context.Context, req SignOutRequest) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
}

// RefreshTokenRepository persists hashed refresh tokens.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, track SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports the owning user and whether the token
	// is revoked or expired.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
