package dto

import (
	"github.com/SscSPs/medication_tracker/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new account.
type RegisterUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateUserRequest lists exactly the profile fields a user may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Role      *domain.UserRole `json:"role" binding:"omitempty,oneof=PATIENT CAREGIVER"`
}

// UpdateEmailRequest changes the login email; the current password is required.
type UpdateEmailRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
