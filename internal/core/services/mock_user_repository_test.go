package services_test

import (
	"context"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByField(ctx context.Context, field portsrepo.UserField, value string) (*domain.User, error) {
	args := m.Called(ctx, field, value)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// newStoredUser builds a user as the repository would return it.
func newStoredUser(id, email, password string) *domain.User {
	u := &domain.User{
		UserID:     id,
		Email:      email,
		Medication: map[string]domain.Medication{},
	}
	u.SetPassword(password)
	return u
}
