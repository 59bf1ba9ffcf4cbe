// Package file stores users in a single JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
)

// userRecord is the on-disk shape of a user.
type userRecord struct {
	ID           string                       `json:"id"`
	Email        string                       `json:"email"`
	PasswordHash string                       `json:"_password,omitempty"`
	FirstName    string                       `json:"first_name,omitempty"`
	LastName     string                       `json:"last_name,omitempty"`
	Role         string                       `json:"role,omitempty"`
	SessionID    string                       `json:"session_id,omitempty"`
	ResetToken   string                       `json:"reset_token,omitempty"`
	Medication   map[string]domain.Medication `json:"medication,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// UserRepository keeps every user in memory and rewrites the backing file on each change.
type UserRepository struct {
	mu    sync.RWMutex
	path  string
	users map[string]*domain.User
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// NewUserRepository loads users from path. A missing file starts an empty store.
func NewUserRepository(path string) (*UserRepository, error) {
	r := &UserRepository{path: path, users: map[string]*domain.User{}}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRepositoryProvider wires the file backend into the service layer.
func NewRepositoryProvider(path string) (portsrepo.RepositoryProvider, error) {
	userRepo, err := NewUserRepository(path)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{UserRepo: userRepo}, nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *UserRepository) FindUserByField(_ context.Context, field portsrepo.UserField, value string) (*domain.User, error) {
	if value == "" {
		return nil, apperrors.ErrNotFound
	}
	get, err := fieldGetter(field)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if get(user) == value {
			return user.Clone(), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	if user.UserID == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Email != "" {
		for id, other := range r.users {
			if id != user.UserID && other.Email == user.Email {
				return fmt.Errorf("email %s: %w", user.Email, apperrors.ErrDuplicate)
			}
		}
	}

	previous, existed := r.users[user.UserID]
	r.users[user.UserID] = user.Clone()
	if err := r.flush(); err != nil {
		if existed {
			r.users[user.UserID] = previous
		} else {
			delete(r.users, user.UserID)
		}
		return err
	}
	return nil
}

func (r *UserRepository) DeleteUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, userID)
	if err := r.flush(); err != nil {
		r.users[userID] = previous
		return err
	}
	return nil
}

func (r *UserRepository) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return nil
	}

	var records map[string]userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to decode %s: %w", r.path, err)
	}
	for id, rec := range records {
		rec.ID = id
		r.users[id] = toDomainUser(rec)
	}
	return nil
}

// flush writes the whole store to a temp file and renames it over the old one.
// Callers must hold the write lock.
func (r *UserRepository) flush() error {
	records := make(map[string]userRecord, len(r.users))
	for id, user := range r.users {
		records[id] = toUserRecord(user)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write users: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

func fieldGetter(field portsrepo.UserField) (func(*domain.User) string, error) {
	switch field {
	case portsrepo.UserFieldEmail:
		return func(u *domain.User) string { return u.Email }, nil
	case portsrepo.UserFieldSessionID:
		return func(u *domain.User) string { return u.SessionID }, nil
	case portsrepo.UserFieldResetToken:
		return func(u *domain.User) string { return u.ResetToken }, nil
	default:
		return nil, fmt.Errorf("%w: unsupported user field %q", apperrors.ErrValidation, field)
	}
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:           u.UserID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		SessionID:    u.SessionID,
		ResetToken:   u.ResetToken,
		Medication:   u.Medication,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toDomainUser(rec userRecord) *domain.User {
	medication := rec.Medication
	if medication == nil {
		medication = map[string]domain.Medication{}
	}
	return &domain.User{
		UserID:       rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Role:         domain.UserRole(rec.Role),
		SessionID:    rec.SessionID,
		ResetToken:   rec.ResetToken,
		Medication:   medication,
		AuditFields: domain.AuditFields{
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		},
	}
}
