package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// stubUserService returns canned values per user id.
type stubUserService struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUserService) Get(_ context.Context, userID string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return u, nil
}

func (s *stubUserService) List(_ context.Context, _ int32, _ string) ([]domain.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return nil, "", nil
}

func getUser(t *testing.T, svc *stubUserService, id string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewUserHandler(svc)
	r := chi.NewRouter()
	r.Get("/v1/users/{id}", h.Get)
	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+id, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUserGet_Found(t *testing.T) {
	svc := &stubUserService{users: map[string]*domain.User{
		"u1": {UserID: "u1", Email: "ann@x.com"},
	}}
	rec := getUser(t, svc, "u1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann@x.com")
}

func TestUserGet_Missing(t *testing.T) {
	svc := &stubUserService{users: map[string]*domain.User{}}
	rec := getUser(t, svc, "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserGet_StoreFailureIs500(t *testing.T) {
	svc := &stubUserService{err: errors.New("dynamo unavailable")}
	rec := getUser(t, svc, "u1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUserList_EmptyPageIsEmptyArray(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
