package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hmiyata/schedule-api/internal/model"
	apperrors "github.com/hmiyata/schedule-api/pkg/errors"
)

const slotIdentityConstraint = "available_slots_identity_key"

func (r *slotRepository) CreateBatch(ctx context.Context, staffID uuid.UUID, date model.Date, windows []model.TimeWindow) ([]*model.AvailableSlot, error) {
	now := time.Now()

	valueClauses := make([]string, 0, len(windows))
	args := make([]interface{}, 0, len(windows)*6)
	for i, w := range windows {
		base := i * 6
		valueClauses = append(valueClauses, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, uuid.New(), staffID, date, w.Start, w.End, now)
	}

	// One multi-row INSERT keeps the batch all-or-nothing.
	query := fmt.Sprintf(`
		INSERT INTO available_slots (id, staff_id, date, start_time, end_time, created_at)
		VALUES %s
		RETURNING id, staff_id, date, start_time, end_time, is_full, created_at
	`, strings.Join(valueClauses, ", "))

	var slots []*model.AvailableSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == slotIdentityConstraint {
			return nil, apperrors.DuplicateSlot()
		}
		return nil, fmt.Errorf("failed to create slot batch: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.AvailableSlot, error) {
	query := `
		SELECT s.id, s.staff_id, s.date, s.start_time, s.end_time,
			   s.is_full, s.created_at, st.name AS staff_name
		FROM available_slots s
		JOIN staff st ON st.id = s.staff_id
		WHERE s.id = $1
	`
	var slot model.AvailableSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) List(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailableSlot, error) {
	query := `
		SELECT s.id, s.staff_id, s.date, s.start_time, s.end_time,
			   s.is_full, s.created_at, st.name AS staff_name
		FROM available_slots s
		JOIN staff st ON st.id = s.staff_id
	`
	var clauses []string
	var args []interface{}

	if filters != nil && filters.StaffID != nil {
		args = append(args, *filters.StaffID)
		clauses = append(clauses, fmt.Sprintf("s.staff_id = $%d", len(args)))
	}
	if filters != nil && filters.Date != nil {
		args = append(args, *filters.Date)
		clauses = append(clauses, fmt.Sprintf("s.date = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY s.date ASC, s.start_time ASC"

	var slots []*model.AvailableSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) SetFull(ctx context.Context, id uuid.UUID, isFull bool) error {
	query := `
		UPDATE available_slots
		SET is_full = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, isFull, id)
	if err != nil {
		return fmt.Errorf("failed to update slot capacity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("slot", nil)
	}
	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM available_slots
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("slot", nil)
	}
	return nil
}
