package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/utils"
)

// UserRole is an optional label attached to an account.
type UserRole string

const (
	RolePatient   UserRole = "PATIENT"
	RoleCaregiver UserRole = "CAREGIVER"
)

// User represents a registered account together with its medication records.
// Empty strings mean "not set" for every optional field.
type User struct {
	UserID       string                `json:"id"`
	Email        string                `json:"email"`
	PasswordHash string                `json:"-"`
	FirstName    string                `json:"firstName"`
	LastName     string                `json:"lastName"`
	Role         UserRole              `json:"role"`
	SessionID    string                `json:"-"`
	ResetToken   string                `json:"-"`
	Medication   map[string]Medication `json:"medication"`
	AuditFields
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// SetPassword stores the hash of pwd. An empty password clears the hash,
// which makes every later password check fail.
func (u *User) SetPassword(pwd string) {
	if pwd == "" {
		u.PasswordHash = ""
		return
	}
	u.PasswordHash = utils.HashPassword(pwd)
}

// IsValidPassword reports whether pwd matches the stored hash.
func (u *User) IsValidPassword(pwd string) bool {
	return utils.CheckPasswordHash(pwd, u.PasswordHash)
}

// DisplayName prefers the full name, then whichever single name is set, then the email.
func (u *User) DisplayName() string {
	switch {
	case u.Email == "" && u.FirstName == "" && u.LastName == "":
		return ""
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UpdateMedication upserts every entry after verifying the owner's password.
// Entries are validated up front so a bad entry leaves the map untouched.
// An existing record under the same drug name is replaced, never merged.
func (u *User) UpdateMedication(entries map[string]MedicationEntry, password string, now time.Time) error {
	if !u.IsValidPassword(password) {
		return fmt.Errorf("%w: wrong password", apperrors.ErrForbidden)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: no medication supplied", apperrors.ErrValidation)
	}

	records := make(map[string]Medication, len(entries))
	for drugName, entry := range entries {
		if drugName == "" {
			return fmt.Errorf("%w: drug name must not be empty", apperrors.ErrValidation)
		}
		med, err := NewMedication(entry, now)
		if err != nil {
			return fmt.Errorf("drug %q: %w", drugName, err)
		}
		records[drugName] = med
	}

	if u.Medication == nil {
		u.Medication = make(map[string]Medication, len(records))
	}
	for drugName, med := range records {
		u.Medication[drugName] = med
	}
	return nil
}

// RemoveMedication deletes a single drug after verifying the owner's password.
func (u *User) RemoveMedication(drugName, password string) error {
	if !u.IsValidPassword(password) {
		return fmt.Errorf("%w: wrong password", apperrors.ErrForbidden)
	}
	if _, ok := u.Medication[drugName]; !ok {
		return fmt.Errorf("drug %q: %w", drugName, apperrors.ErrNotFound)
	}
	delete(u.Medication, drugName)
	return nil
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (u *User) Clone() *User {
	c := *u
	if u.Medication != nil {
		c.Medication = make(map[string]Medication, len(u.Medication))
		for k, v := range u.Medication {
			c.Medication[k] = v.clone()
		}
	}
	return &c
}
