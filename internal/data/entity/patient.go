package entity

import (
	"github.com/google/uuid"
)

// Patient adalah profile row untuk user dengan role patient.
// Satu user maksimal satu row (user_id unique).
type Patient struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	ContactNo   *string   `db:"contact_no"`
	Age         *int      `db:"age"`
	Gender      *string   `db:"gender"`
	DateOfBirth *string   `db:"date_of_birth"`
	Occupation  *string   `db:"occupation"`
}

// InsertPatient adalah subset field yang diisi dari details form.
type InsertPatient struct {
	UserID      uuid.UUID
	Name        string
	ContactNo   *string
	Age         *int
	Gender      *string
	DateOfBirth *string
	Occupation  *string
}

// UpdatePatient berisi partial fields; nil berarti field tidak diubah.
type UpdatePatient struct {
	Name        *string
	ContactNo   *string
	Age         *int
	Gender      *string
	DateOfBirth *string
	Occupation  *string
}
