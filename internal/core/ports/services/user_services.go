package services

import (
	"context"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	"github.com/SscSPs/medication_tracker/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new account with a unique email.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateProfile changes the enumerated profile fields of a user.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// UpdateEmail reassigns the email after checking the current password.
	// It returns false, without error, when the password does not match.
	UpdateEmail(ctx context.Context, userID, email, password string) (bool, error)
}

// PasswordResetSvc defines the reset-token flow.
type PasswordResetSvc interface {
	// GetResetPasswordToken issues and stores a new reset token for email.
	GetResetPasswordToken(ctx context.Context, email string) (string, error)

	// UpdatePassword consumes resetToken and stores the new password.
	UpdatePassword(ctx context.Context, resetToken, password string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user permanently.
	DeleteUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	PasswordResetSvc
	UserLifecycleSvc
}
