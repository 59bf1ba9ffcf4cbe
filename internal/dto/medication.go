package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
)

// dateIssuedLayouts are tried in order when parsing the optional issue date.
var dateIssuedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UpsertMedicationRequest is the body of POST/PUT /meds/:id.
// MedData maps a drug name to [dose, hours between doses, max doses?, date issued?].
type UpsertMedicationRequest struct {
	Password string           `json:"password"`
	MedData  map[string][]any `json:"med_data"`
}

// RemoveMedicationRequest is the body of DELETE /meds/:id/:drug_name.
type RemoveMedicationRequest struct {
	Password string `json:"password"`
}

// MedicationResponse mirrors domain.Medication.
type MedicationResponse struct {
	Dose              int        `json:"dose"`
	TimeBetweenDosage int        `json:"time_between_dosage"`
	MaxDoses          *int       `json:"max_doses,omitempty"`
	DateIssued        time.Time  `json:"date_issued"`
	EndDate           *time.Time `json:"end_date,omitempty"`
}

// ToMedicationResponse converts a user's medication mapping to its response form.
func ToMedicationResponse(meds map[string]domain.Medication) map[string]MedicationResponse {
	resp := make(map[string]MedicationResponse, len(meds))
	for name, m := range meds {
		resp[name] = MedicationResponse{
			Dose:              m.Dose,
			TimeBetweenDosage: m.TimeBetweenDosage,
			MaxDoses:          m.MaxDoses,
			DateIssued:        m.DateIssued,
			EndDate:           m.EndDate,
		}
	}
	return resp
}

// Entries parses MedData into domain entries. Empty strings and nulls in the
// optional slots mean "not supplied".
func (r UpsertMedicationRequest) Entries() (map[string]domain.MedicationEntry, error) {
	entries := make(map[string]domain.MedicationEntry, len(r.MedData))
	for drugName, slots := range r.MedData {
		entry, err := parseMedicationSlots(slots)
		if err != nil {
			return nil, fmt.Errorf("drug %q: %w", drugName, err)
		}
		entries[drugName] = entry
	}
	return entries, nil
}

func parseMedicationSlots(slots []any) (domain.MedicationEntry, error) {
	var entry domain.MedicationEntry
	if len(slots) < 2 || len(slots) > 4 {
		return entry, fmt.Errorf("%w: expected [dose, time between doses, max doses, date issued]", apperrors.ErrValidation)
	}

	dose, ok, err := parseIntSlot(slots[0])
	if err != nil || !ok {
		return entry, fmt.Errorf("%w: dose must be an integer", apperrors.ErrValidation)
	}
	interval, ok, err := parseIntSlot(slots[1])
	if err != nil || !ok {
		return entry, fmt.Errorf("%w: time between doses must be an integer", apperrors.ErrValidation)
	}
	entry.Dose = dose
	entry.TimeBetweenDosage = interval

	if len(slots) > 2 {
		maxDoses, ok, err := parseIntSlot(slots[2])
		if err != nil {
			return entry, fmt.Errorf("%w: max doses must be an integer", apperrors.ErrValidation)
		}
		if ok {
			entry.MaxDoses = &maxDoses
		}
	}

	if len(slots) > 3 {
		issued, ok, err := parseDateSlot(slots[3])
		if err != nil {
			return entry, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if ok {
			entry.DateIssued = &issued
		}
	}
	return entry, nil
}

// parseIntSlot reports the integer in v and whether one was supplied at all.
// Values outside the int32 range are rejected rather than truncated.
func parseIntSlot(v any) (int, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, false, fmt.Errorf("%v is not an integer", x)
		}
		if x < math.MinInt32 || x > math.MaxInt32 {
			return 0, false, fmt.Errorf("%v is out of range", x)
		}
		return int(x), true, nil
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, false, err
		}
		return checkIntRange(i)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false, err
		}
		return checkIntRange(i)
	default:
		return 0, false, fmt.Errorf("unsupported value %v", v)
	}
}

func checkIntRange(i int64) (int, bool, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false, fmt.Errorf("%d is out of range", i)
	}
	return int(i), true, nil
}

func parseDateSlot(v any) (time.Time, bool, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range dateIssuedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("date issued %q is not a recognised date", s)
	default:
		return time.Time{}, false, fmt.Errorf("date issued must be a string")
	}
}
