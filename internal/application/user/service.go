package user

import (
	"context"

	"github.com/go-auth-api/internal/domain"
)

// Repository is the read contract the user surface requires.
type Repository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	// List returns a page of users plus an opaque cursor for the next page
	// (empty when there are no more).
	List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Get returns the user by id. ErrNotFound passes through from the repo;
// anything else is a store failure and stays distinguishable.
func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, limit, cursor)
}
