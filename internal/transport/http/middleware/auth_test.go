package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/infrastructure/blacklist"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	provider *jwtinfra.Provider
	registry *auth.Registry
	handler  http.Handler
	// hits records whether the protected handler ran and what claims it saw.
	claims *jwtinfra.Claims
	hit    bool
}

func newGateFixture(t *testing.T, sessionTTL time.Duration) *gateFixture {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSecret:       "test-secret",
		SessionTokenTTL: sessionTTL,
		VerifyTokenTTL:  time.Hour,
	})
	require.NoError(t, err)

	f := &gateFixture{provider: p}
	f.registry = auth.NewRegistry(p, blacklist.NewMemoryStore())
	verifier := auth.NewVerifier(p, f.registry)

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hit = true
		f.claims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	f.handler = Auth(verifier)(protected)
	return f
}

func (f *gateFixture) do(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingHeader(t *testing.T) {
	f := newGateFixture(t, time.Hour)

	rec := f.do(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, f.hit)
}

func TestAuth_MalformedHeader(t *testing.T) {
	f := newGateFixture(t, time.Hour)

	rec := f.do(t, "Basic dXNlcjpwdw==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, f.hit)
}

func TestAuth_ValidSessionToken(t *testing.T) {
	f := newGateFixture(t, time.Hour)

	token, err := f.provider.Sign("user-123", "Admin", jwtinfra.PurposeSession)
	require.NoError(t, err)

	rec := f.do(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, f.hit)
	require.NotNil(t, f.claims)
	assert.Equal(t, "user-123", f.claims.Subject)
	assert.Equal(t, "Admin", f.claims.Role)
}

func TestAuth_VerificationTokenRejected(t *testing.T) {
	f := newGateFixture(t, time.Hour)

	token, err := f.provider.Sign("user-123", "", jwtinfra.PurposeEmailVerification)
	require.NoError(t, err)

	rec := f.do(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, f.hit)
}

func TestAuth_RevokedToken(t *testing.T) {
	f := newGateFixture(t, time.Hour)

	token, err := f.provider.Sign("user-123", "User", jwtinfra.PurposeSession)
	require.NoError(t, err)
	require.NoError(t, f.registry.Revoke(context.Background(), token))

	rec := f.do(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, f.hit)
}

func TestAuth_ExpiredToken(t *testing.T) {
	f := newGateFixture(t, -time.Minute)

	token, err := f.provider.Sign("user-123", "User", jwtinfra.PurposeSession)
	require.NoError(t, err)

	rec := f.do(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, f.hit)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := BearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer ")
	_, ok = BearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, ok := BearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}
