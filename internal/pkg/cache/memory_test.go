package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "token-a", time.Minute))
	require.NoError(t, s.Revoke(ctx, "token-b", 0))

	revoked, err := s.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = s.IsRevoked(ctx, "token-b")
	assert.False(t, revoked, "zero ttl is not stored")

	now = now.Add(2 * time.Minute)
	revoked, _ = s.IsRevoked(ctx, "token-a")
	assert.False(t, revoked)

	removed, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Len())
}

func TestTokenKey_Hashes(t *testing.T) {
	k := tokenKey("secret-token")
	assert.Len(t, k, 64)
	assert.NotContains(t, k, "secret")
	assert.Equal(t, k, tokenKey("secret-token"))
}
