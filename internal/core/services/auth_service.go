package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/utils"
)

// authService implements portssvc.AuthSvcFacade on top of the user repository.
// Session tokens live on the user record; one active session per user.
type authService struct {
	BaseService
	userRepo          portsrepo.UserRepositoryFacade
	sessionCookieName string
}

// NewAuthService creates a new auth service reading sessions from sessionCookieName.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, sessionCookieName string, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService:       newBaseService(options...),
		userRepo:          userRepo,
		sessionCookieName: sessionCookieName,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) ValidLogin(ctx context.Context, email, password string) (bool, error) {
	email = domain.NormalizeEmail(email)
	user, err := s.userRepo.FindUserByField(ctx, portsrepo.UserFieldEmail, email)
	if err != nil {
		return false, fmt.Errorf("can't find the user with email %s: %w", email, err)
	}
	return user.IsValidPassword(password), nil
}

func (s *authService) CreateSession(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	user, err := s.userRepo.FindUserByField(ctx, portsrepo.UserFieldEmail, email)
	if err != nil {
		return "", fmt.Errorf("can't find the user with email %s: %w", email, err)
	}

	sessionID, err := utils.GenerateOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	user.SessionID = sessionID
	user.Touch(s.Now())
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to persist session", slog.String("user_id", user.UserID))
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.LogInfo(ctx, "Session created", slog.String("user_id", user.UserID))
	return sessionID, nil
}

func (s *authService) GetUserFromSessionID(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("empty session id: %w", apperrors.ErrNotFound)
	}
	user, err := s.userRepo.FindUserByField(ctx, portsrepo.UserFieldSessionID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return user, nil
}

func (s *authService) DestroySession(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("can't find the user with id %s: %w", userID, err)
	}

	user.SessionID = ""
	user.Touch(s.Now())
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	s.LogInfo(ctx, "Session destroyed", slog.String("user_id", userID))
	return nil
}

func (s *authService) SessionCookie(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(s.sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *authService) AuthorizationHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth returns false only when path, with or without a trailing slash,
// is literally listed in excludedPaths.
func (s *authService) RequireAuth(path string, excludedPaths []string) bool {
	if path == "" || len(excludedPaths) == 0 {
		return true
	}
	for _, excluded := range excludedPaths {
		if path == excluded || path+"/" == excluded {
			return false
		}
	}
	return true
}
