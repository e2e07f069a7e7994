package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hmiyata/schedule-api/internal/model"
)

type StaffRepository interface {
	// Create inserts the staff row and, when passwordHash is non-empty, its
	// login credential in the same transaction.
	Create(ctx context.Context, staff *model.Staff, passwordHash string) error
	Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
	GetCredential(ctx context.Context, staffID uuid.UUID) (*model.StaffCredential, error)
	List(ctx context.Context) ([]*model.Staff, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SlotRepository interface {
	// CreateBatch inserts one row per window in a single statement, so the
	// write is all-or-nothing.
	CreateBatch(ctx context.Context, staffID uuid.UUID, date model.Date, windows []model.TimeWindow) ([]*model.AvailableSlot, error)
	Get(ctx context.Context, id uuid.UUID) (*model.AvailableSlot, error)
	List(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailableSlot, error)
	SetFull(ctx context.Context, id uuid.UUID, isFull bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
