package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeUpsert(t *testing.T, body string) dto.UpsertMedicationRequest {
	t.Helper()
	var req dto.UpsertMedicationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestUpsertMedicationRequest_Entries(t *testing.T) {
	req := decodeUpsert(t, `{
		"password": "pw1",
		"med_data": {
			"aspirin": [1, 8, 4, ""],
			"ibuprofen": ["2", "6"],
			"insulin": [3, 12, null, "2024-01-10"],
			"zinc": [1, 24, "", "2024-01-10T08:30:00Z"]
		}
	}`)

	entries, err := req.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	aspirin := entries["aspirin"]
	assert.Equal(t, 1, aspirin.Dose)
	assert.Equal(t, 8, aspirin.TimeBetweenDosage)
	require.NotNil(t, aspirin.MaxDoses)
	assert.Equal(t, 4, *aspirin.MaxDoses)
	assert.Nil(t, aspirin.DateIssued)

	ibuprofen := entries["ibuprofen"]
	assert.Equal(t, 2, ibuprofen.Dose)
	assert.Equal(t, 6, ibuprofen.TimeBetweenDosage)
	assert.Nil(t, ibuprofen.MaxDoses)

	insulin := entries["insulin"]
	assert.Nil(t, insulin.MaxDoses)
	require.NotNil(t, insulin.DateIssued)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *insulin.DateIssued)

	zinc := entries["zinc"]
	require.NotNil(t, zinc.DateIssued)
	assert.Equal(t, time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC), zinc.DateIssued.UTC())
}

func TestUpsertMedicationRequest_EntriesErrors(t *testing.T) {
	tests := map[string]string{
		"too few slots":          `{"med_data": {"aspirin": [1]}}`,
		"too many slots":        `{"med_data": {"aspirin": [1, 8, 4, "", "x"]}}`,
		"missing dose":            `{"med_data": {"aspirin": ["", 8]}}`,
		"fractional dose":      `{"med_data": {"aspirin": [1.5, 8]}}`,
		"non numeric hours":  `{"med_data": {"aspirin": [1, "often"]}}`,
		"bad max doses":          `{"med_data": {"aspirin": [1, 8, true]}}`,
		"bad date":                    `{"med_data": {"aspirin": [1, 8, 4, "yesterday"]}}`,
		"hours out of range": `{"med_data": {"aspirin": [1, 1e19, 4]}}`,
		"doses out of range": `{"med_data": {"aspirin": [1, 8, "99999999999"]}}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeUpsert(t, body).Entries()
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
