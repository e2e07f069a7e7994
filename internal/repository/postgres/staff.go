package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hmiyata/schedule-api/internal/model"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
)

const staffEmailConstraint = "staff_email_key"

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff, passwordHash string) error {
	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO staff (id, name, email, created_at)
			VALUES ($1, $2, $3, $4)
		`
		_, err := tx.ExecContext(ctx, query,
			staff.ID,
			staff.Name,
			staff.Email,
			staff.CreatedAt,
		)
		if err != nil {
			// The unique constraint, not the pre-check, is the source of
			// truth for email uniqueness.
			if constraint, ok := uniqueViolation(err); ok && constraint == staffEmailConstraint {
				return apperrors.DuplicateEmail(staff.Email)
			}
			return fmt.Errorf("failed to create staff: %w", err)
		}

		if passwordHash == "" {
			return nil
		}

		credQuery := `
			INSERT INTO staff_credentials (staff_id, password_hash, created_at)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, credQuery, staff.ID, passwordHash, staff.CreatedAt); err != nil {
			return fmt.Errorf("failed to create staff credential: %w", err)
		}
		return nil
	})
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	query := `
		SELECT id, name, email, created_at
		FROM staff
		WHERE id = $1
	`
	var staff model.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	query := `
		SELECT id, name, email, created_at
		FROM staff
		WHERE email = $1
	`
	var staff model.Staff
	if err := r.db.GetContext(ctx, &staff, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff", err)
		}
		return nil, fmt.Errorf("failed to get staff by email: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetCredential(ctx context.Context, staffID uuid.UUID) (*model.StaffCredential, error) {
	query := `
		SELECT staff_id, password_hash, created_at
		FROM staff_credentials
		WHERE staff_id = $1
	`
	var cred model.StaffCredential
	if err := r.db.GetContext(ctx, &cred, query, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("credential", err)
		}
		return nil, fmt.Errorf("failed to get staff credential: %w", err)
	}
	return &cred, nil
}

func (r *staffRepository) List(ctx context.Context) ([]*model.Staff, error) {
	query := `
		SELECT id, name, email, created_at
		FROM staff
		ORDER BY name ASC
	`
	var staff []*model.Staff
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Owned slots go with the row via ON DELETE CASCADE.
	query := `
		DELETE FROM staff
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff", nil)
	}
	return nil
}
