package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cache"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "24h", cache.NewMemoryStore(), false)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()
	role := user.RoleManager

	token, exp, err := svc.GenerateAccessToken("user-1", "m@example.com", &role)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, exp, int64(0))

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "m@example.com", claims["email"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, TypeAccess, claims["type"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "soon", "24h", cache.NewMemoryStore(), false)
	_, _, err := svc.GenerateAccessToken("user-1", "e@example.com", nil)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken("user-1", "e@example.com", nil)
	require.NoError(t, err)

	revoked, err := svc.IsTokenRevoked(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.RevokeToken(ctx, token))
	revoked, err = svc.IsTokenRevoked(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, svc.RevokeToken(ctx, "not-a-jwt"))
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateSSEToken("user-9")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()
	access, _, err := svc.GenerateAccessToken("user-1", "e@example.com", nil)
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()
	c := svc.RefreshTokenCookie("abc", 1700000000)
	assert.Equal(t, "refresh_token", c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/api/v1/auth", c.Path)

	cleared := svc.ClearRefreshTokenCookie()
	assert.Equal(t, -1, cleared.MaxAge)
}
