package auth

import (
	"context"
	"testing"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/infrastructure/blacklist"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, sessionTTL time.Duration) (*jwtinfra.Provider, *Registry, *Verifier) {
	t.Helper()
	p := newTestProvider(t, sessionTTL)
	reg := NewRegistry(p, blacklist.NewMemoryStore())
	return p, reg, NewVerifier(p, reg)
}

func TestVerifier_ValidToken(t *testing.T) {
	p, _, v := newTestVerifier(t, time.Hour)

	tokenStr, err := p.Sign("user-123", "Moderator", jwtinfra.PurposeSession)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "Moderator", claims.Role)
}

func TestVerifier_RevokedToken(t *testing.T) {
	p, reg, v := newTestVerifier(t, time.Hour)
	ctx := context.Background()

	tokenStr, err := p.Sign("user-123", "User", jwtinfra.PurposeSession)
	require.NoError(t, err)
	require.NoError(t, reg.Revoke(ctx, tokenStr))

	_, err = v.Verify(ctx, tokenStr)
	assert.ErrorIs(t, err, domain.ErrRevokedToken)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	p, _, v := newTestVerifier(t, -time.Minute)

	tokenStr, err := p.Sign("user-123", "User", jwtinfra.PurposeSession)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), tokenStr)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

// A naturally expired token that was once revoked must still be rejected as
// expired after its registry entry is gone, never accepted.
func TestVerifier_ExpiryOutlivesRegistryEntry(t *testing.T) {
	p, reg, v := newTestVerifier(t, -time.Minute)
	ctx := context.Background()

	tokenStr, err := p.Sign("user-123", "User", jwtinfra.PurposeSession)
	require.NoError(t, err)

	// Revoking an expired token stores nothing.
	require.NoError(t, reg.Revoke(ctx, tokenStr))
	revoked, err := reg.IsRevoked(ctx, tokenStr)
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = v.Verify(ctx, tokenStr)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestVerifier_MalformedToken(t *testing.T) {
	_, _, v := newTestVerifier(t, time.Hour)

	_, err := v.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
