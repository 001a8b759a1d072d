// Package cache stores revoked access tokens until they would have expired.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RevocationStore remembers revoked tokens for at most their remaining lifetime.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)

	// Sweep drops expired entries. Stores with native expiry may no-op.
	Sweep(ctx context.Context) (int, error)
	Close() error
}

// tokenKey hashes the token so raw credentials never sit in the cache.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
