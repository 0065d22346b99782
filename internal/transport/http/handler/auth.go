package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-auth-api/internal/application/auth"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// AuthHandler handles registration, login, logout and email verification.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_, err := h.svc.Register(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "user registered, please verify your email"})
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, domain.ErrNotifyFailed):
		// The user record exists; only delivery failed. Distinguishable so
		// the caller retries the email rather than re-registering.
		writeError(w, http.StatusInternalServerError, "user registered but verification email could not be sent")
	default:
		slog.Error("register failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	err := h.svc.VerifyEmail(r.Context(), chi.URLParam(r, "token"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email verified successfully"})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		// Invalid, expired and revoked all collapse to one message.
		slog.Info("email verification rejected", "reason", err)
		writeError(w, http.StatusBadRequest, "invalid or expired token")
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.Login(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, AuthEnvelope{Token: token, Message: "login successful"})
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

// Logout revokes the presented token. Missing token is a 400 here, not a 401:
// the route is public and revocation is idempotent, so there is nothing to
// protect.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenStr, ok := middleware.BearerToken(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "no token provided")
		return
	}
	if err := h.svc.Logout(r.Context(), tokenStr); err != nil {
		slog.Error("logout failed", "err", err)
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logout successful"})
}
