package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/hmiyata/schedule-api/internal/repository"
)

type staffRepository struct {
	*BaseRepository
}

type slotRepository struct {
	*BaseRepository
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	base := NewBaseRepository(db)
	return &staffRepository{BaseRepository: &base}
}

func NewSlotRepository(db *sqlx.DB) repository.SlotRepository {
	base := NewBaseRepository(db)
	return &slotRepository{BaseRepository: &base}
}
