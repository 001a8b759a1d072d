package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUpdateFailed    = errors.New("failed to update profile")
	ErrInvalidAvatar   = errors.New("invalid avatar file")
)
