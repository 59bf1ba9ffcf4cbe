package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/medication_tracker/internal/apperrors"
	"github.com/SscSPs/medication_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/medication_tracker/internal/models"
	"github.com/SscSPs/medication_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, password_hash, first_name, last_name, role, session_id, reset_token, medication, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// fieldColumns whitelists the columns FindUserByField may filter on.
var fieldColumns = map[portsrepo.UserField]string{
	portsrepo.UserFieldEmail:      "email",
	portsrepo.UserFieldSessionID:  "session_id",
	portsrepo.UserFieldResetToken: "reset_token",
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser, err := mapping.ToModelUser(user)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (user_id) DO UPDATE SET
            email = EXCLUDED.email,
            password_hash = EXCLUDED.password_hash,
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            role = EXCLUDED.role,
            session_id = EXCLUDED.session_id,
            reset_token = EXCLUDED.reset_token,
            medication = EXCLUDED.medication,
            updated_at = EXCLUDED.updated_at;
    `
	_, err = r.Pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Role,
		modelUser.SessionID,
		modelUser.ResetToken,
		modelUser.Medication,
		modelUser.CreatedAt,
		modelUser.UpdatedAt,
	)
	return r.translateError(err, "failed to save user")
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return r.findOne(ctx, query, userID)
}

func (r *PgxUserRepository) FindUserByField(ctx context.Context, field portsrepo.UserField, value string) (*domain.User, error) {
	column, ok := fieldColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported user field %q", apperrors.ErrValidation, field)
	}
	if value == "" {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 LIMIT 1;`
	return r.findOne(ctx, query, value)
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return r.translateError(err, "failed to delete user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Role,
		&m.SessionID,
		&m.ResetToken,
		&m.Medication,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, r.translateError(err, "failed to find user")
	}

	user, err := mapping.ToDomainUser(m)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
