package models

import "time"

// AuditFields are the timestamp columns shared by stored rows.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
