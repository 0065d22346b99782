package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
)

// Store is the expiring key set backing the revocation registry. Entries are
// inserted with a TTL and must disappear once it elapses; both an in-memory
// map and Redis native expiry satisfy this contract.
type Store interface {
	Add(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
}

// TokenParser reads tokens. Verify enforces signature and expiry; Decode
// enforces only the signature so expired tokens remain readable.
type TokenParser interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
	Decode(tokenStr string) (*jwtinfra.Claims, error)
}

// Registry records revoked tokens until they would have expired naturally.
// It owns entry lifecycle exclusively; the verifier only reads it.
type Registry struct {
	parser TokenParser
	store  Store
}

func NewRegistry(parser TokenParser, store Store) *Registry {
	return &Registry{parser: parser, store: store}
}

// Revoke blacklists a token for exactly its remaining lifetime. The signature
// is verified before the embedded expiry is trusted, so a forged token with a
// far-future expiry can never pin a registry entry. Unverifiable and
// already-expired tokens are a no-op, which makes logout idempotent.
func (r *Registry) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := r.parser.Decode(tokenStr)
	if err != nil {
		slog.Debug("revoke skipped: token failed signature check")
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return r.store.Add(ctx, tokenKey(tokenStr), remaining)
}

// IsRevoked reports whether the token is currently blacklisted. After the
// entry's TTL elapses this deterministically returns false; by then the
// verifier's own expiry check rejects the token anyway.
func (r *Registry) IsRevoked(ctx context.Context, tokenStr string) (bool, error) {
	return r.store.Exists(ctx, tokenKey(tokenStr))
}

// tokenKey derives the registry key: a SHA-256 digest of the raw token, so
// live bearer credentials are never stored verbatim in the backing store.
func tokenKey(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return hex.EncodeToString(sum[:])
}
