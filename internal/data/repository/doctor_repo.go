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

func (s *Store) DoctorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	query := `
		SELECT id, user_id, name, contact_no, employee_id, gender, age,
		       experience, qualifications, created_at, updated_at
		FROM doctors
		WHERE user_id = $1
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var doctor entity.Doctor
	err := s.db.QueryRow(opCtx, query, userID).Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Name,
		&doctor.ContactNo,
		&doctor.EmployeeID,
		&doctor.Gender,
		&doctor.Age,
		&doctor.Experience,
		&doctor.Qualifications,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to find doctor by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find doctor by user ID %s: %w", userID.String(), err)
	}

	return &doctor, nil
}

func (s *Store) CreateDoctor(ctx context.Context, doctor *entity.Doctor) error {
	query := `
		INSERT INTO doctors (id, user_id, name, contact_no, employee_id, gender,
		                     age, experience, qualifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.Exec(opCtx, query,
		doctor.ID,
		doctor.UserID,
		doctor.Name,
		doctor.ContactNo,
		doctor.EmployeeID,
		doctor.Gender,
		doctor.Age,
		doctor.Experience,
		doctor.Qualifications,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err) {
			return fmt.Errorf("create doctor for user %s: %w", doctor.UserID.String(), storage.ErrConflict)
		}
		s.log.Error("Failed to create doctor",
			zap.Error(err),
			zap.String("user_id", doctor.UserID.String()),
		)
		return fmt.Errorf("create doctor for user %s: %w", doctor.UserID.String(), err)
	}

	return nil
}

// UpdateDoctor menerapkan partial update; field nil tidak diubah.
func (s *Store) UpdateDoctor(ctx context.Context, userID uuid.UUID, details entity.UpdateDoctor) (*entity.Doctor, error) {
	query := `
		UPDATE doctors
		SET name           = COALESCE($2, name),
		    contact_no     = COALESCE($3, contact_no),
		    employee_id    = COALESCE($4, employee_id),
		    gender         = COALESCE($5, gender),
		    age            = COALESCE($6, age),
		    experience     = COALESCE($7, experience),
		    qualifications = COALESCE($8, qualifications),
		    updated_at     = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, name, contact_no, employee_id, gender, age,
		          experience, qualifications, created_at, updated_at
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var doctor entity.Doctor
	err := s.db.QueryRow(opCtx, query,
		userID,
		details.Name,
		details.ContactNo,
		details.EmployeeID,
		details.Gender,
		details.Age,
		details.Experience,
		details.Qualifications,
	).Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Name,
		&doctor.ContactNo,
		&doctor.EmployeeID,
		&doctor.Gender,
		&doctor.Age,
		&doctor.Experience,
		&doctor.Qualifications,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("update doctor for user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to update doctor",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("update doctor for user %s: %w", userID.String(), err)
	}

	return &doctor, nil
}
