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

func (s *Store) User(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, username, password, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var user entity.User
	err := s.db.QueryRow(opCtx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return &user, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, password, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var user entity.User
	err := s.db.QueryRow(opCtx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return &user, nil
}

// CreateUser menyimpan user baru. Password boleh nil (akun OAuth).
func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.Exec(opCtx, query,
		user.ID,
		user.Username,
		user.Password,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if uniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Username, storage.ErrConflict)
		}
		s.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (s *Store) UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, password, role, created_at, updated_at
	`

	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var user entity.User
	err := s.db.QueryRow(opCtx, query, userID, role).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("update role for user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if err != nil {
		s.log.Error("Failed to update user role",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("update role for user %s: %w", userID.String(), err)
	}

	return &user, nil
}

// UserWithRole mengambil user plus profile row sesuai role-nya.
func (s *Store) UserWithRole(ctx context.Context, userID uuid.UUID) (*storage.UserWithRole, error) {
	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	result := &storage.UserWithRole{User: user}
	if user.Role == nil {
		return result, nil
	}

	switch *user.Role {
	case entity.RolePatient:
		patient, err := s.PatientByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if patient != nil {
			result.RoleData = patient
		}
	case entity.RoleDoctor:
		doctor, err := s.DoctorByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if doctor != nil {
			result.RoleData = doctor
		}
	case entity.RoleFamily:
		member, err := s.FamilyMemberByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			result.RoleData = member
		}
	}

	return result, nil
}
