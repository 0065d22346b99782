package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. The purpose selects the TTL policy and restricts where a
// token is accepted: session tokens pass the access gate, verification tokens
// only complete the email-verification flow.
const (
	PurposeSession           = "session"
	PurposeEmailVerification = "email-verification"
)

// ErrNoSecret is returned by NewProvider when the signing secret is unset.
var ErrNoSecret = errors.New("jwt: signing secret is not configured")

// Claims holds the JWT payload fields. Subject carries the user id.
type Claims struct {
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-wide secret.
type Provider struct {
	secret []byte
	ttls   map[string]time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrNoSecret
	}
	return &Provider{
		secret: []byte(cfg.JWTSecret),
		ttls: map[string]time.Duration{
			PurposeSession:           cfg.SessionTokenTTL,
			PurposeEmailVerification: cfg.VerifyTokenTTL,
		},
	}, nil
}

// Sign issues a token for userID with the TTL policy of the given purpose.
// role is only embedded for session tokens.
func (p *Provider) Sign(userID, role, purpose string) (string, error) {
	ttl, ok := p.ttls[purpose]
	if !ok {
		return "", fmt.Errorf("unknown token purpose %q", purpose)
	}
	if purpose != PurposeSession {
		role = ""
	}
	now := time.Now().UTC()
	claims := Claims{
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks signature and expiry, in that order; no claim is trusted
// before the signature has been validated. Revocation is checked by the
// caller, which needs a verified token string as its lookup key.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, p.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Decode validates the signature but skips claims validation, so claims of
// an already-expired token can still be read. The revocation registry uses
// this to compute a token's remaining lifetime without letting a forged
// expiry pin a registry entry.
func (p *Provider) Decode(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, p.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (p *Provider) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return p.secret, nil
}
