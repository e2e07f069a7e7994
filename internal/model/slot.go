package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailableSlot is one bookable time window on one calendar day, owned by
// exactly one staff member. IsFull is toggled manually, it is not computed
// from bookings.
type AvailableSlot struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	Date      Date      `db:"date" json:"date"`
	StartTime ClockTime `db:"start_time" json:"start_time"`
	EndTime   ClockTime `db:"end_time" json:"end_time"`
	IsFull    bool      `db:"is_full" json:"is_full"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Denormalized owner name for display, populated on list reads.
	StaffName string `db:"staff_name" json:"staff_name,omitempty"`
}

// TimeWindow is one start/end pair within a batch creation request.
type TimeWindow struct {
	Start ClockTime `json:"start" validate:"required"`
	End   ClockTime `json:"end" validate:"required"`
}

type CreateSlotBatchRequest struct {
	StaffID uuid.UUID    `json:"staff_id" validate:"required"`
	Date    Date         `json:"date" validate:"required"`
	Windows []TimeWindow `json:"windows" validate:"required,min=1,dive"`
}

type UpdateSlotCapacityRequest struct {
	IsFull *bool `json:"is_full" validate:"required"`
}

// SlotFilters narrows list reads. A nil StaffID means all owners.
type SlotFilters struct {
	StaffID *uuid.UUID
	Date    *Date
}
