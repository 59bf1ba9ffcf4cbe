package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Upper bounds on a dosing schedule. maxCourseHours keeps EndDate within
// a century of DateIssued and far inside time.Duration's range.
const (
	MaxHoursBetweenDoses = 8760
	MaxDoseCount         = 100000
	maxCourseHours       = 100 * 8760
)

// MedicationEntry is the caller-supplied dosing schedule for one drug.
// MaxDoses and DateIssued are optional.
type MedicationEntry struct {
	Dose              int        `validate:"gt=0"`
	TimeBetweenDosage int        `validate:"gt=0,lte=8760"` // hours
	MaxDoses          *int       `validate:"omitempty,gt=0,lte=100000"`
	DateIssued        *time.Time `validate:"omitempty"`
}

// Medication is the stored record for one drug.
// EndDate is set iff MaxDoses is set.
type Medication struct {
	Dose              int        `json:"dose"`
	TimeBetweenDosage int        `json:"time_between_dosage"`
	MaxDoses          *int       `json:"max_doses,omitempty"`
	DateIssued        time.Time  `json:"date_issued"`
	EndDate           *time.Time `json:"end_date,omitempty"`
}

// NewMedication validates entry and derives the stored record.
// DateIssued defaults to now; EndDate is DateIssued + TimeBetweenDosage*MaxDoses hours.
func NewMedication(entry MedicationEntry, now time.Time) (Medication, error) {
	if err := validate.Struct(entry); err != nil {
		return Medication{}, fmt.Errorf("%w: dose must be positive, time between doses within 1..%d hours, max doses within 1..%d",
			apperrors.ErrValidation, MaxHoursBetweenDoses, MaxDoseCount)
	}
	if entry.MaxDoses != nil && int64(entry.TimeBetweenDosage)*int64(*entry.MaxDoses) > maxCourseHours {
		return Medication{}, fmt.Errorf("%w: treatment course longer than %d hours", apperrors.ErrValidation, maxCourseHours)
	}

	issued := now.UTC().Truncate(time.Second)
	if entry.DateIssued != nil {
		issued = entry.DateIssued.UTC()
	}

	med := Medication{
		Dose:              entry.Dose,
		TimeBetweenDosage: entry.TimeBetweenDosage,
		DateIssued:        issued,
	}
	if entry.MaxDoses != nil {
		maxDoses := *entry.MaxDoses
		end := issued.Add(time.Duration(int64(entry.TimeBetweenDosage)*int64(maxDoses)) * time.Hour)
		med.MaxDoses = &maxDoses
		med.EndDate = &end
	}
	return med, nil
}

func (m Medication) clone() Medication {
	if m.MaxDoses != nil {
		v := *m.MaxDoses
		m.MaxDoses = &v
	}
	if m.EndDate != nil {
		v := *m.EndDate
		m.EndDate = &v
	}
	return m
}
