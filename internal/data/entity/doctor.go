package entity

import (
	"github.com/google/uuid"
)

// Doctor adalah profile row untuk user dengan role doctor.
type Doctor struct {
	Base
	UserID         uuid.UUID `db:"user_id"`
	Name           string    `db:"name"`
	ContactNo      *string   `db:"contact_no"`
	EmployeeID     *string   `db:"employee_id"`
	Gender         *string   `db:"gender"`
	Age            *int      `db:"age"`
	Experience     *int      `db:"experience"`
	Qualifications *string   `db:"qualifications"`
}

type InsertDoctor struct {
	UserID         uuid.UUID
	Name           string
	ContactNo      *string
	EmployeeID     *string
	Gender         *string
	Age            *int
	Experience     *int
	Qualifications *string
}

// UpdateDoctor berisi partial fields; nil berarti field tidak diubah.
type UpdateDoctor struct {
	Name           *string
	ContactNo      *string
	EmployeeID     *string
	Gender         *string
	Age            *int
	Experience     *int
	Qualifications *string
}
