package auth

import (
	"context"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
)

// Verifier performs the full token check in the mandatory order: signature,
// expiry, then revocation. The signature must pass before the token string is
// used as a registry lookup key, so forged tokens never reach the store.
type Verifier struct {
	parser   TokenParser
	registry *Registry
}

func NewVerifier(parser TokenParser, registry *Registry) *Verifier {
	return &Verifier{parser: parser, registry: registry}
}

func (v *Verifier) Verify(ctx context.Context, tokenStr string) (*jwtinfra.Claims, error) {
	claims, err := v.parser.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	revoked, err := v.registry.IsRevoked(ctx, tokenStr)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrRevokedToken
	}
	return claims, nil
}
