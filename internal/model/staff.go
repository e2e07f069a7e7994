package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a person who can own availability slots and sign in to the
// administrative area.
type Staff struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateStaffRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	// Optional sign-in password. Staff without credentials cannot use the
	// administrative area but can still own slots.
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// StaffCredential holds the bcrypt hash for one staff member's login.
type StaffCredential struct {
	StaffID      uuid.UUID `db:"staff_id"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
