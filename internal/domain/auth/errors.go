package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmailExists         = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
)
