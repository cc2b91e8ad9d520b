package entity

import (
	"github.com/google/uuid"
)

// FamilyMember adalah profile row untuk user dengan role family.
// PatientID merujuk ke patient yang didampingi (nullable — form hanya
// mengisi patient_name, linking ke row patient dilakukan belakangan).
type FamilyMember struct {
	Base
	UserID              uuid.UUID  `db:"user_id"`
	PatientID           *uuid.UUID `db:"patient_id"`
	Name                string     `db:"name"`
	ContactNo           *string    `db:"contact_no"`
	RelationWithPatient *string    `db:"relation_with_patient"`
	PatientName         *string    `db:"patient_name"`
	Gender              *string    `db:"gender"`
	Age                 *int       `db:"age"`
}

type InsertFamilyMember struct {
	UserID              uuid.UUID
	PatientID           *uuid.UUID
	Name                string
	ContactNo           *string
	RelationWithPatient *string
	PatientName         *string
	Gender              *string
	Age                 *int
}

// UpdateFamilyMember berisi partial fields; nil berarti field tidak diubah.
type UpdateFamilyMember struct {
	PatientID           *uuid.UUID
	Name                *string
	ContactNo           *string
	RelationWithPatient *string
	PatientName         *string
	Gender              *string
	Age                 *int
}
