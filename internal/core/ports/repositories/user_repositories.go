package repositories

import (
	"context"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
)

// UserField names a unique, queryable user attribute.
type UserField string

const (
	UserFieldEmail      UserField = "email"
	UserFieldSessionID  UserField = "session_id"
	UserFieldResetToken UserField = "reset_token"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	// Returns apperrors.ErrNotFound when no user matches.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByField retrieves the first user whose field equals value.
	// Returns apperrors.ErrNotFound when no user matches or value is empty.
	FindUserByField(ctx context.Context, field UserField, value string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts or fully replaces a user.
	// Returns apperrors.ErrDuplicate when the email belongs to another user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes a user permanently.
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
