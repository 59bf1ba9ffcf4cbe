package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMapping_NullableColumns(t *testing.T) {
	u := domain.User{UserID: "u1", Email: "a@b.com", FirstName: "A"}
	u.SetPassword("pw1")

	m, err := ToModelUser(u)
	require.NoError(t, err)

	assert.True(t, m.Email.Valid)
	assert.True(t, m.FirstName.Valid)
	assert.False(t, m.LastName.Valid)
	assert.False(t, m.SessionID.Valid, "an unset session must be stored as NULL")
	assert.False(t, m.ResetToken.Valid)
	assert.JSONEq(t, `{}`, string(m.Medication))
}

func TestUserMapping_MedicationSurvivesConversion(t *testing.T) {
	u := domain.User{UserID: "u1", Email: "a@b.com"}
	u.SetPassword("pw1")
	maxDoses := 4
	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, u.UpdateMedication(map[string]domain.MedicationEntry{
		"aspirin": {Dose: 1, TimeBetweenDosage: 8, MaxDoses: &maxDoses, DateIssued: &issued},
	}, "pw1", time.Now()))

	m, err := ToModelUser(u)
	require.NoError(t, err)
	back, err := ToDomainUser(m)
	require.NoError(t, err)

	require.Contains(t, back.Medication, "aspirin")
	med := back.Medication["aspirin"]
	assert.Equal(t, issued, med.DateIssued)
	require.NotNil(t, med.EndDate)
	assert.Equal(t, issued.Add(32*time.Hour), *med.EndDate)
	assert.True(t, back.IsValidPassword("pw1"))
}
