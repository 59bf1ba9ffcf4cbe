package services

import (
	"context"
	"net/http"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
)

// SessionSvc manages server-side login sessions.
type SessionSvc interface {
	// ValidLogin checks credentials. Unknown emails yield apperrors.ErrNotFound.
	ValidLogin(ctx context.Context, email, password string) (bool, error)

	// CreateSession issues a new session token for the user owning email,
	// replacing any previous session.
	CreateSession(ctx context.Context, email string) (string, error)

	// GetUserFromSessionID resolves a session token to its user.
	GetUserFromSessionID(ctx context.Context, sessionID string) (*domain.User, error)

	// DestroySession clears the session of userID.
	DestroySession(ctx context.Context, userID string) error
}

// RequestAuthSvc extracts credentials from requests and decides which paths need them.
type RequestAuthSvc interface {
	// SessionCookie returns the session cookie value, or "" if absent.
	SessionCookie(r *http.Request) string

	// AuthorizationHeader returns the bearer token in the Authorization header, or "" if absent.
	AuthorizationHeader(r *http.Request) string

	// RequireAuth reports whether path needs an authenticated caller.
	RequireAuth(path string, excludedPaths []string) bool
}

// AuthSvcFacade combines session management and request inspection.
type AuthSvcFacade interface {
	SessionSvc
	RequestAuthSvc
}
