package jwtinfra

import (
	"testing"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		SessionTokenTTL: time.Hour,
		VerifyTokenTTL:  time.Hour,
	}
}

func TestNewProvider_NoSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	_, err := NewProvider(cfg)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestSignVerify_SessionRoundTrip(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	tokenStr, err := p.Sign("user-123", "Admin", PurposeSession)
	require.NoError(t, err)

	claims, err := p.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, PurposeSession, claims.Purpose)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestSign_VerificationTokenCarriesNoRole(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	tokenStr, err := p.Sign("user-123", "Admin", PurposeEmailVerification)
	require.NoError(t, err)

	claims, err := p.Verify(tokenStr)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
	assert.Equal(t, PurposeEmailVerification, claims.Purpose)
}

func TestSign_UnknownPurpose(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	_, err = p.Sign("user-123", "User", "refresh")
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.SessionTokenTTL = -time.Minute
	p, err := NewProvider(cfg)
	require.NoError(t, err)

	tokenStr, err := p.Sign("user-123", "User", PurposeSession)
	require.NoError(t, err)

	_, err = p.Verify(tokenStr)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	p1, err := NewProvider(testConfig())
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "another-secret"
	p2, err := NewProvider(other)
	require.NoError(t, err)

	tokenStr, err := p1.Sign("user-123", "User", PurposeSession)
	require.NoError(t, err)

	_, err = p2.Verify(tokenStr)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	_, err = p.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDecode_ReadsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.SessionTokenTTL = -time.Minute
	p, err := NewProvider(cfg)
	require.NoError(t, err)

	tokenStr, err := p.Sign("user-123", "User", PurposeSession)
	require.NoError(t, err)

	claims, err := p.Decode(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestDecode_RejectsForgedSignature(t *testing.T) {
	p1, err := NewProvider(testConfig())
	require.NoError(t, err)

	other := testConfig()
	other.JWTSecret = "another-secret"
	p2, err := NewProvider(other)
	require.NoError(t, err)

	tokenStr, err := p1.Sign("user-123", "User", PurposeSession)
	require.NoError(t, err)

	_, err = p2.Decode(tokenStr)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
