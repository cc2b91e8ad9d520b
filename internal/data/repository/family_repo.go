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

func (s *Store) FamilyMemberByUserID(ctx context.Context, userID uuid.UUID) (*entity.FamilyMember, error) {
	query := `
		SELECT id, user_id, patient_id, name, contact_no, relation_with_patient,
		       patient_name, gender, age, created_at, updated_at
		FROM family_members
		WHERE user_id = $1
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var member entity.FamilyMember
	err := s.db.QueryRow(opCtx, query, userID).Scan(
		&member.ID,
		&member.UserID,
		&member.PatientID,
		&member.Name,
		&member.ContactNo,
		&member.RelationWithPatient,
		&member.PatientName,
		&member.Gender,
		&member.Age,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to find family member by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find family member by user ID %s: %w", userID.String(), err)
	}

	return &member, nil
}

func (s *Store) CreateFamilyMember(ctx context.Context, member *entity.FamilyMember) error {
	query := `
		INSERT INTO family_members (id, user_id, patient_id, name, contact_no,
		                            relation_with_patient, patient_name, gender,
		                            age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.Exec(opCtx, query,
		member.ID,
		member.UserID,
		member.PatientID,
		member.Name,
		member.ContactNo,
		member.RelationWithPatient,
		member.PatientName,
		member.Gender,
		member.Age,
		member.CreatedAt,
		member.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err) {
			return fmt.Errorf("create family member for user %s: %w", member.UserID.String(), storage.ErrConflict)
		}
		s.log.Error("Failed to create family member",
			zap.Error(err),
			zap.String("user_id", member.UserID.String()),
		)
		return fmt.Errorf("create family member for user %s: %w", member.UserID.String(), err)
	}

	return nil
}

// UpdateFamilyMember menerapkan partial update; field nil tidak diubah.
func (s *Store) UpdateFamilyMember(ctx context.Context, userID uuid.UUID, details entity.UpdateFamilyMember) (*entity.FamilyMember, error) {
	query := `
		UPDATE family_members
		SET patient_id            = COALESCE($2, patient_id),
		    name                  = COALESCE($3, name),
		    contact_no            = COALESCE($4, contact_no),
		    relation_with_patient = COALESCE($5, relation_with_patient),
		    patient_name          = COALESCE($6, patient_name),
		    gender                = COALESCE($7, gender),
		    age                   = COALESCE($8, age),
		    updated_at            = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, patient_id, name, contact_no, relation_with_patient,
		          patient_name, gender, age, created_at, updated_at
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var member entity.FamilyMember
	err := s.db.QueryRow(opCtx, query,
		userID,
		details.PatientID,
		details.Name,
		details.ContactNo,
		details.RelationWithPatient,
		details.PatientName,
		details.Gender,
		details.Age,
	).Scan(
		&member.ID,
		&member.UserID,
		&member.PatientID,
		&member.Name,
		&member.ContactNo,
		&member.RelationWithPatient,
		&member.PatientName,
		&member.Gender,
		&member.Age,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("update family member for user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to update family member",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("update family member for user %s: %w", userID.String(), err)
	}

	return &member, nil
}
