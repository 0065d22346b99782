package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/pkg/id"
	"github.com/go-auth-api/internal/pkg/password"
	"github.com/go-auth-api/internal/pkg/validate"
)

// UserRepository is the credential store contract the auth flows require.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// Notifier delivers a message to a recipient, fire-and-forget.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TokenSigner issues signed tokens for a user id and purpose.
type TokenSigner interface {
	Sign(userID, role, purpose string) (string, error)
}

// TokenVerifier is the read side of the token lifecycle: signature, expiry
// and revocation, in that order.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenStr string) (*jwtinfra.Claims, error)
}

// TokenRevoker is the write side: blacklist a token for its remaining life.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenStr string) error
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	VerifyEmail(ctx context.Context, tokenStr string) error
	Login(ctx context.Context, req domain.LoginRequest) (string, error)
	Logout(ctx context.Context, tokenStr string) error
}

type ServiceDeps struct {
	UserRepo UserRepository
	Hasher   password.Hasher
	Notifier Notifier
	Signer   TokenSigner
	Verifier TokenVerifier
	Registry TokenRevoker
	// BaseURL is embedded in verification links sent to new users.
	BaseURL string
	// NotifyTimeout bounds every notifier call.
	NotifyTimeout time.Duration
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.NotifyTimeout <= 0 {
		deps.NotifyTimeout = 5 * time.Second
	}
	return &service{deps: deps}
}

// dummyDigest is compared against when the email is unknown, so unknown-user
// and wrong-password rejections take comparable time.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register creates an unverified user and sends the verification link.
// The role is always User; it is never client-settable at registration.
// If the notification fails the user record is kept and ErrNotifyFailed is
// returned so the caller can retry delivery without re-registering.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.deps.UserRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.deps.Hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hash,
		Role:          domain.RoleUser,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.deps.UserRepo.Put(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.deps.Signer.Sign(u.UserID, "", jwtinfra.PurposeEmailVerification)
	if err != nil {
		return u, fmt.Errorf("issue verification token: %w", domain.ErrNotifyFailed)
	}
	link := fmt.Sprintf("%s/v1/auth/verify-email/%s", s.deps.BaseURL, token)

	notifyCtx, cancel := context.WithTimeout(ctx, s.deps.NotifyTimeout)
	defer cancel()
	if err := s.deps.Notifier.Send(notifyCtx, u.Email, "Verify your email", "Click here to verify: "+link); err != nil {
		slog.Error("verification email not sent", "user_id", u.UserID, "err", err)
		return u, fmt.Errorf("verification email not sent: %w", domain.ErrNotifyFailed)
	}
	return u, nil
}

// VerifyEmail completes the email-verification flow for the token embedded
// in the link sent at registration.
func (s *service) VerifyEmail(ctx context.Context, tokenStr string) error {
	claims, err := s.deps.Verifier.Verify(ctx, tokenStr)
	if err != nil {
		return err
	}
	if claims.Purpose != jwtinfra.PurposeEmailVerification {
		return domain.ErrInvalidToken
	}
	u, err := s.deps.UserRepo.Get(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if u.EmailVerified {
		return fmt.Errorf("email already verified: %w", domain.ErrBadRequest)
	}
	return s.deps.UserRepo.Update(ctx, u.UserID, map[string]interface{}{"email_verified": true})
}

// Login checks, in order: the claimed role against the stored record, email
// verification, and only then the password. Unknown email and wrong password
// are deliberately indistinguishable to the client.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !domain.ValidRole(req.Role) {
		return "", fmt.Errorf("unknown role %q: %w", req.Role, domain.ErrBadRequest)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.deps.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.deps.Hasher.Compare(req.Password, dummyDigest)
			return "", fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
		}
		return "", err
	}
	if u.Role != req.Role {
		return "", fmt.Errorf("role mismatch: %w", domain.ErrForbidden)
	}
	if !u.EmailVerified {
		return "", fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	if !s.deps.Hasher.Compare(req.Password, u.PasswordHash) {
		return "", fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	return s.deps.Signer.Sign(u.UserID, u.Role, jwtinfra.PurposeSession)
}

// Logout revokes the presented token. Already-revoked and already-expired
// tokens are not an error.
func (s *service) Logout(ctx context.Context, tokenStr string) error {
	return s.deps.Registry.Revoke(ctx, tokenStr)
}
