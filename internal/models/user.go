package models

import (
	"database/sql"
)

// User is the row shape of the users table.
// Nullable columns use sql.Null* so "unset" round-trips as NULL.
type User struct {
	UserID       string         `db:"user_id"`
	Email        sql.NullString `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Role         sql.NullString `db:"role"`
	SessionID    sql.NullString `db:"session_id"`
	ResetToken   sql.NullString `db:"reset_token"`
	Medication   []byte         `db:"medication"` // JSONB
	AuditFields
}
