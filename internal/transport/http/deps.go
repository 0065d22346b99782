package http

import (
	"context"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/pkg/password"
)

// UserRepository is the full user store contract the router requires.
// *dynamo.UserRepo satisfies it; tests inject in-memory fakes.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	Notifier    auth.Notifier
	Blacklist   auth.Store
	JWTProvider *jwtinfra.Provider
	Hasher      password.Hasher
}
