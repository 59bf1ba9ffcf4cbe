package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/dto"
	"github.com/SscSPs/medication_tracker/internal/utils"
	"github.com/google/uuid"
)

// userService implements portssvc.UserSvcFacade
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	if err := s.ensureEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}

	user := domain.User{
		UserID:     uuid.NewString(),
		Email:      email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Medication: map[string]domain.Medication{},
	}
	user.SetPassword(req.Password)
	user.Touch(s.Now())

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("email", email))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	user.Touch(s.Now())

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateEmail(ctx context.Context, userID, email, password string) (bool, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !user.IsValidPassword(password) {
		return false, nil
	}

	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if err := s.ensureEmailAvailable(ctx, email, user.UserID); err != nil {
		return false, err
	}

	user.Email = email
	user.Touch(s.Now())
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return false, fmt.Errorf("failed to update email of user %s: %w", userID, err)
	}
	return true, nil
}

func (s *userService) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	user, err := s.userRepo.FindUserByField(ctx, portsrepo.UserFieldEmail, email)
	if err != nil {
		return "", fmt.Errorf("can't find the user with email %s: %w", email, err)
	}

	token, err := utils.GenerateOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.ResetToken = token
	user.Touch(s.Now())
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	s.LogInfo(ctx, "Reset token issued", slog.String("user_id", user.UserID))
	return token, nil
}

func (s *userService) UpdatePassword(ctx context.Context, resetToken, password string) error {
	user, err := s.userRepo.FindUserByField(ctx, portsrepo.UserFieldResetToken, resetToken)
	if err != nil {
		return fmt.Errorf("can't find the user with this reset token: %w", err)
	}
	if password == "" {
		return fmt.Errorf("%w: new password is required", apperrors.ErrValidation)
	}

	user.SetPassword(password)
	user.ResetToken = ""
	user.Touch(s.Now())
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.LogInfo(ctx, "Password updated", slog.String("user_id", user.UserID))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// ensureEmailAvailable fails with ErrDuplicate when email belongs to a user other than selfID.
func (s *userService) ensureEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.userRepo.FindUserByField(ctx, portsrepo.UserFieldEmail, email)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email availability: %w", err)
	case existing.UserID != selfID:
		return fmt.Errorf("this email is already in use: %w", apperrors.ErrDuplicate)
	default:
		return nil
	}
}
