package session

import "errors"

var (
	ErrNoSession       = errors.New("no active session")
	ErrResolveFailed   = errors.New("failed to resolve session")
	ErrProviderStopped = errors.New("session provider stopped")
)
