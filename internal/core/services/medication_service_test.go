package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/medication_tracker/internal/core/ports/services"
	"github.com/SscSPs/medication_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MedicationServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.MedicationSvcFacade
	now          time.Time
}

func (suite *MedicationServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewMedicationService(suite.mockUserRepo, services.WithClock(func() time.Time { return suite.now }))
}

func intPtr(v int) *int { return &v }

func (suite *MedicationServiceTestSuite) TestGetMedication_EmptyWhenNil() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	stored.Medication = nil
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	meds, err := suite.service.GetMedication(ctx, "u1")

	suite.NoError(err)
	suite.NotNil(meds)
	suite.Empty(meds)
}

func (suite *MedicationServiceTestSuite) TestGetMedication_UnknownUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	meds, err := suite.service.GetMedication(ctx, "ghost")

	suite.Nil(meds)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MedicationServiceTestSuite) TestUpdateMedication_PersistsOnce() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	entries := map[string]domain.MedicationEntry{
		"aspirin":   {Dose: 1, TimeBetweenDosage: 8, MaxDoses: intPtr(4)},
		"ibuprofen": {Dose: 2, TimeBetweenDosage: 6},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return len(user.Medication) == 2
	})).Return(nil).Once()

	meds, err := suite.service.UpdateMedication(ctx, "u1", entries, "pw1")

	suite.Require().NoError(err)
	suite.Require().Contains(meds, "aspirin")
	suite.Equal(suite.now, meds["aspirin"].DateIssued)
	suite.Require().NotNil(meds["aspirin"].EndDate)
	suite.Equal(suite.now.Add(32*time.Hour), *meds["aspirin"].EndDate)
	suite.Nil(meds["ibuprofen"].EndDate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *MedicationServiceTestSuite) TestUpdateMedication_WrongPassword() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	meds, err := suite.service.UpdateMedication(ctx, "u1", map[string]domain.MedicationEntry{
		"aspirin": {Dose: 1, TimeBetweenDosage: 8},
	}, "wrong")

	suite.Nil(meds)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *MedicationServiceTestSuite) TestUpdateMedication_SaveError() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	_, err := suite.service.UpdateMedication(ctx, "u1", map[string]domain.MedicationEntry{
		"aspirin": {Dose: 1, TimeBetweenDosage: 8},
	}, "pw1")

	suite.ErrorIs(err, assert.AnError)
}

func (suite *MedicationServiceTestSuite) TestRemoveMedication() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	stored.Medication["aspirin"] = domain.Medication{Dose: 1, TimeBetweenDosage: 8, DateIssued: suite.now}

	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		_, still := user.Medication["aspirin"]
		return !still
	})).Return(nil).Once()

	suite.NoError(suite.service.RemoveMedication(ctx, "u1", "aspirin", "pw1"))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *MedicationServiceTestSuite) TestRemoveMedication_UnknownDrug() {
	ctx := context.Background()
	stored := newStoredUser("u1", "a@b.com", "pw1")
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()

	err := suite.service.RemoveMedication(ctx, "u1", "nope", "pw1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func TestMedicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MedicationServiceTestSuite))
}
