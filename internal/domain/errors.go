package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking
// infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Token verification failures. Handlers log these distinctly but collapse
// them to a single "invalid or expired token" message for clients.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrRevokedToken = errors.New("token revoked")
)

// ErrNotifyFailed signals that the user record was persisted but the
// verification notification could not be delivered. The caller may retry
// the notification; the registration itself is not rolled back.
var ErrNotifyFailed = errors.New("notification delivery failed")
