package services

import (
	"context"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
)

// MedicationSvcFacade manages the medication records owned by a user.
type MedicationSvcFacade interface {
	// GetMedication returns the medication mapping of userID.
	GetMedication(ctx context.Context, userID string) (map[string]domain.Medication, error)

	// UpdateMedication upserts entries after password verification and persists once.
	UpdateMedication(ctx context.Context, userID string, entries map[string]domain.MedicationEntry, password string) (map[string]domain.Medication, error)

	// RemoveMedication deletes one drug after password verification.
	RemoveMedication(ctx context.Context, userID, drugName, password string) error
}
