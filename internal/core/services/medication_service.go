package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
)

type medicationService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewMedicationService creates a service managing medication records stored on users.
func NewMedicationService(userRepo portsrepo.UserRepositoryFacade, options ...ServiceOption) portssvc.MedicationSvcFacade {
	return &medicationService{
		BaseService: newBaseService(options...),
		userRepo:    userRepo,
	}
}

var _ portssvc.MedicationSvcFacade = (*medicationService)(nil)

func (s *medicationService) GetMedication(ctx context.Context, userID string) (map[string]domain.Medication, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if user.Medication == nil {
		return map[string]domain.Medication{}, nil
	}
	return user.Medication, nil
}

func (s *medicationService) UpdateMedication(ctx context.Context, userID string, entries map[string]domain.MedicationEntry, password string) (map[string]domain.Medication, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	now := s.Now()
	if err := user.UpdateMedication(entries, password, now); err != nil {
		return nil, err
	}
	user.Touch(now)

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to persist medication", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save medication: %w", err)
	}

	s.LogInfo(ctx, "Medication updated", slog.String("user_id", userID), slog.Int("drugs", len(entries)))
	return user.Medication, nil
}

func (s *medicationService) RemoveMedication(ctx context.Context, userID, drugName, password string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	if err := user.RemoveMedication(drugName, password); err != nil {
		return err
	}
	user.Touch(s.Now())

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to save medication: %w", err)
	}

	s.LogInfo(ctx, "Medication removed", slog.String("user_id", userID), slog.String("drug", drugName))
	return nil
}
