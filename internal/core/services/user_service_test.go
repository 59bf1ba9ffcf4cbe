package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/core/services"
	"github.com/SscSPs/medication_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	now          time.Time
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewUserService(suite.mockUserRepo, services.WithClock(func() time.Time { return suite.now }))
}

// --- RegisterUser Tests ---
func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Email: "a@b.com", Password: "pw1", FirstName: "A", LastName: "B"}

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "a@b.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "a@b.com" && user.PasswordHash != "" && user.PasswordHash != "pw1"
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.NotPanics(func() { uuid.MustParse(user.UserID) })
	suite.Equal("A B", user.DisplayName())
	suite.True(user.IsValidPassword("pw1"))
	suite.Equal(suite.now, user.CreatedAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	existing := newStoredUser(uuid.NewString(), "a@b.com", "other")

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "a@b.com").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{Email: "a@b.com", Password: "pw1"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_MissingPassword() {
	user, err := suite.service.RegisterUser(context.Background(), dto.RegisterUserRequest{Email: "a@b.com"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_SaveError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "a@b.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{Email: "a@b.com", Password: "pw1"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateProfile Tests ---
func (suite *UserServiceTestSuite) TestUpdateProfile_OnlyGivenFields() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	stored.FirstName = "A"
	stored.LastName = "B"
	newLast := "C"
	role := domain.RoleCaregiver

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.FirstName == "A" && user.LastName == "C" && user.Role == domain.RoleCaregiver
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProfile(ctx, "u1", dto.UpdateUserRequest{LastName: &newLast, Role: &role})

	suite.Require().NoError(err)
	suite.Equal("A C", updated.DisplayName())
	suite.Equal(suite.now, updated.UpdatedAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateEmail Tests ---
func (suite *UserServiceTestSuite) TestUpdateEmail_WrongPassword() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	changed, err := suite.service.UpdateEmail(ctx, "u1", "new@b.com", "nope")

	suite.NoError(err)
	suite.False(changed)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateEmail_TakenByAnotherUser() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	other := newStoredUser("u2", "new@b.com", "pw2")

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "new@b.com").Return(other, nil).Once()

	changed, err := suite.service.UpdateEmail(ctx, "u1", "new@b.com", "pw1")

	suite.False(changed)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateEmail_Success() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "new@b.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new@b.com"
	})).Return(nil).Once()

	changed, err := suite.service.UpdateEmail(ctx, "u1", "new@b.com", "pw1")

	suite.NoError(err)
	suite.True(changed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Password reset Tests ---
func (suite *UserServiceTestSuite) TestGetResetPasswordToken_StoresToken() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	var saved domain.User

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "a@b.com").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	token, err := suite.service.GetResetPasswordToken(ctx, "a@b.com")

	suite.Require().NoError(err)
	suite.Len(token, 64)
	suite.Equal(token, saved.ResetToken)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetResetPasswordToken_TrimsEmail() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "a@b.com").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	token, err := suite.service.GetResetPasswordToken(ctx, " a@b.com ")

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetResetPasswordToken_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldEmail, "x@y.com").Return(nil, apperrors.ErrNotFound).Once()

	token, err := suite.service.GetResetPasswordToken(ctx, "x@y.com")

	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestUpdatePassword_ConsumesToken() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	stored.ResetToken = "tok"

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldResetToken, "tok").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.ResetToken == "" && user.IsValidPassword("pw2") && !user.IsValidPassword("pw1")
	})).Return(nil).Once()

	err := suite.service.UpdatePassword(ctx, "tok", "pw2")

	suite.NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdatePassword_UnknownToken() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByField", ctx, portsrepo.UserFieldResetToken, "bad").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.UpdatePassword(ctx, "bad", "pw2")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("DeleteUser", ctx, "u1").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, "u1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
