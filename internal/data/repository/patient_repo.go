package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/storage"
)

func (s *Store) PatientByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	query := `
		SELECT id, user_id, name, contact_no, age, gender,
		       date_of_birth, occupation, created_at, updated_at
		FROM patients
		WHERE user_id = $1
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var patient entity.Patient
	err := s.db.QueryRow(opCtx, query, userID).Scan(
		&patient.ID,
		&patient.UserID,
		&patient.Name,
		&patient.ContactNo,
		&patient.Age,
		&patient.Gender,
		&patient.DateOfBirth,
		&patient.Occupation,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to find patient by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find patient by user ID %s: %w", userID.String(), err)
	}

	return &patient, nil
}

func (s *Store) CreatePatient(ctx context.Context, patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, user_id, name, contact_no, age, gender,
		                      date_of_birth, occupation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.Exec(opCtx, query,
		patient.ID,
		patient.UserID,
		patient.Name,
		patient.ContactNo,
		patient.Age,
		patient.Gender,
		patient.DateOfBirth,
		patient.Occupation,
		patient.CreatedAt,
		patient.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err) {
			return fmt.Errorf("create patient for user %s: %w", patient.UserID.String(), storage.ErrConflict)
		}
		s.log.Error("Failed to create patient",
			zap.Error(err),
			zap.String("user_id", patient.UserID.String()),
		)
		return fmt.Errorf("create patient for user %s: %w", patient.UserID.String(), err)
	}

	return nil
}

// UpdatePatient menerapkan partial update; field nil tidak diubah.
func (s *Store) UpdatePatient(ctx context.Context, userID uuid.UUID, details entity.UpdatePatient) (*entity.Patient, error) {
	query := `
		UPDATE patients
		SET name          = COALESCE($2, name),
		    contact_no    = COALESCE($3, contact_no),
		    age           = COALESCE($4, age),
		    gender        = COALESCE($5, gender),
		    date_of_birth = COALESCE($6, date_of_birth),
		    occupation    = COALESCE($7, occupation),
		    updated_at    = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, name, contact_no, age, gender,
		          date_of_birth, occupation, created_at, updated_at
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var patient entity.Patient
	err := s.db.QueryRow(opCtx, query,
		userID,
		details.Name,
		details.ContactNo,
		details.Age,
		details.Gender,
		details.DateOfBirth,
		details.Occupation,
	).Scan(
		&patient.ID,
		&patient.UserID,
		&patient.Name,
		&patient.ContactNo,
		&patient.Age,
		&patient.Gender,
		&patient.DateOfBirth,
		&patient.Occupation,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("update patient for user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to update patient",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("update patient for user %s: %w", userID.String(), err)
	}

	return &patient, nil
}
