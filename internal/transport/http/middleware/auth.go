package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// TokenVerifier is what the access gate requires from the token subsystem.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenStr string) (*jwtinfra.Claims, error)
}

// Auth is the access gate: it extracts the bearer token, runs the full
// verification (signature, expiry, revocation) and injects the verified
// claims into the request context. Only session tokens pass. The precise
// failure cause is logged but never sent to the client.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := BearerToken(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			claims, err := verifier.Verify(r.Context(), tokenStr)
			if err != nil {
				slog.Info("token rejected", "path", r.URL.Path, "reason", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if claims.Purpose != jwtinfra.PurposeSession {
				slog.Info("token rejected", "path", r.URL.Path, "reason", "non-session purpose")
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(h, "Bearer ")
	return token, token != ""
}

// ClaimsFromContext extracts verified claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
