package mapping

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/medication_tracker/internal/core/domain"
	"github.com/SscSPs/medication_tracker/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) (models.User, error) {
	medication := d.Medication
	if medication == nil {
		medication = map[string]domain.Medication{}
	}
	medJSON, err := json.Marshal(medication)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to encode medication: %w", err)
	}

	return models.User{
		UserID:       d.UserID,
		Email:        nullString(d.Email),
		PasswordHash: nullString(d.PasswordHash),
		FirstName:    nullString(d.FirstName),
		LastName:     nullString(d.LastName),
		Role:         nullString(string(d.Role)),
		SessionID:    nullString(d.SessionID),
		ResetToken:   nullString(d.ResetToken),
		Medication:   medJSON,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) (domain.User, error) {
	medication := map[string]domain.Medication{}
	if len(m.Medication) > 0 {
		if err := json.Unmarshal(m.Medication, &medication); err != nil {
			return domain.User{}, fmt.Errorf("failed to decode medication of user %s: %w", m.UserID, err)
		}
	}

	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email.String,
		PasswordHash: m.PasswordHash.String,
		FirstName:    m.FirstName.String,
		LastName:     m.LastName.String,
		Role:         domain.UserRole(m.Role.String),
		SessionID:    m.SessionID.String,
		ResetToken:   m.ResetToken.String,
		Medication:   medication,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
