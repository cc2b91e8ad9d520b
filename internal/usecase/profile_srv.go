package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/storage"
	"meditrack/internal/dto/request"
)

var (
	// ErrRoleNotSet: user belum melewati role-selection step.
	ErrRoleNotSet = errors.New("role not selected")
	// ErrRoleMismatch: details yang dikirim tidak cocok dengan role user.
	ErrRoleMismatch = errors.New("details do not match user role")
)

type ProfileService interface {
	Role(ctx context.Context, userID uuid.UUID) (entity.UserRole, error)
	SetRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error)

	Details(ctx context.Context, userID uuid.UUID) (any, error)
	SetPatientDetails(ctx context.Context, userID uuid.UUID, req *request.PatientDetailsRequest) (*entity.Patient, error)
	SetDoctorDetails(ctx context.Context, userID uuid.UUID, req *request.DoctorDetailsRequest) (*entity.Doctor, error)
	SetFamilyDetails(ctx context.Context, userID uuid.UUID, req *request.FamilyDetailsRequest) (*entity.FamilyMember, error)
}

type profileService struct {
	store storage.Storage
	log   *zap.Logger
}

func NewProfileService(store storage.Storage, log *zap.Logger) ProfileService {
	return &profileService{
		store: store,
		log:   log,
	}
}

func (s *profileService) Role(ctx context.Context, userID uuid.UUID) (entity.UserRole, error) {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user for role", zap.Error(err), zap.String("user_id", userID.String()))
		return "", fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if user.Role == nil {
		return "", ErrRoleNotSet
	}
	return *user.Role, nil
}

// SetRole adalah idempotent overwrite: set berulang tidak error, nilai
// terakhir yang menang. Flow UI hanya memanggil sekali, tapi store tidak
// memaksakan itu.
func (s *profileService) SetRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error) {
	user, err := s.store.UpdateUserRole(ctx, userID, role)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("Failed to set role", zap.Error(err), zap.String("user_id", userID.String()))
		}
		return nil, err
	}

	s.log.Info("User role set",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))

	return user, nil
}

func (s *profileService) Details(ctx context.Context, userID uuid.UUID) (any, error) {
	result, err := s.store.UserWithRole(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user details", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load details: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if result.User.Role == nil {
		return nil, ErrRoleNotSet
	}
	if result.RoleData == nil {
		return nil, fmt.Errorf("details for user %s: %w", userID.String(), storage.ErrNotFound)
	}
	return result.RoleData, nil
}

// requireRole memastikan profile row yang ditulis cocok dengan role user.
func (s *profileService) requireRole(ctx context.Context, userID uuid.UUID, want entity.UserRole) error {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID.String(), storage.ErrNotFound)
	}
	if user.Role == nil {
		return ErrRoleNotSet
	}
	if *user.Role != want {
		return ErrRoleMismatch
	}
	return nil
}

func (s *profileService) SetPatientDetails(ctx context.Context, userID uuid.UUID, req *request.PatientDetailsRequest) (*entity.Patient, error) {
	if err := s.requireRole(ctx, userID, entity.RolePatient); err != nil {
		return nil, err
	}

	existing, err := s.store.PatientByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}

	// Upsert: create saat details-submission pertama, update setelahnya
	if existing == nil {
		now := time.Now()
		patient := &entity.Patient{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:      userID,
			Name:        req.Name,
			ContactNo:   req.ContactNo,
			Age:         req.Age,
			Gender:      req.Gender,
			DateOfBirth: req.DateOfBirth,
			Occupation:  req.Occupation,
		}
		if err := s.store.CreatePatient(ctx, patient); err != nil {
			s.log.Error("Failed to create patient", zap.Error(err), zap.String("user_id", userID.String()))
			return nil, err
		}
		s.log.Info("Patient details created", zap.String("user_id", userID.String()))
		return patient, nil
	}

	updated, err := s.store.UpdatePatient(ctx, userID, entity.UpdatePatient{
		Name:        &req.Name,
		ContactNo:   req.ContactNo,
		Age:         req.Age,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Occupation:  req.Occupation,
	})
	if err != nil {
		s.log.Error("Failed to update patient", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	s.log.Info("Patient details updated", zap.String("user_id", userID.String()))
	return updated, nil
}

func (s *profileService) SetDoctorDetails(ctx context.Context, userID uuid.UUID, req *request.DoctorDetailsRequest) (*entity.Doctor, error) {
	if err := s.requireRole(ctx, userID, entity.RoleDoctor); err != nil {
		return nil, err
	}

	existing, err := s.store.DoctorByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find doctor: %w", err)
	}

	if existing == nil {
		now := time.Now()
		doctor := &entity.Doctor{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:         userID,
			Name:           req.Name,
			ContactNo:      req.ContactNo,
			EmployeeID:     req.EmployeeID,
			Gender:         req.Gender,
			Age:            req.Age,
			Experience:     req.Experience,
			Qualifications: req.Qualifications,
		}
		if err := s.store.CreateDoctor(ctx, doctor); err != nil {
			s.log.Error("Failed to create doctor", zap.Error(err), zap.String("user_id", userID.String()))
			return nil, err
		}
		s.log.Info("Doctor details created", zap.String("user_id", userID.String()))
		return doctor, nil
	}

	updated, err := s.store.UpdateDoctor(ctx, userID, entity.UpdateDoctor{
		Name:           &req.Name,
		ContactNo:      req.ContactNo,
		EmployeeID:     req.EmployeeID,
		Gender:         req.Gender,
		Age:            req.Age,
		Experience:     req.Experience,
		Qualifications: req.Qualifications,
	})
	if err != nil {
		s.log.Error("Failed to update doctor", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	s.log.Info("Doctor details updated", zap.String("user_id", userID.String()))
	return updated, nil
}

func (s *profileService) SetFamilyDetails(ctx context.Context, userID uuid.UUID, req *request.FamilyDetailsRequest) (*entity.FamilyMember, error) {
	if err := s.requireRole(ctx, userID, entity.RoleFamily); err != nil {
		return nil, err
	}

	existing, err := s.store.FamilyMemberByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find family member: %w", err)
	}

	if existing == nil {
		now := time.Now()
		member := &entity.FamilyMember{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:              userID,
			Name:                req.Name,
			ContactNo:           req.ContactNo,
			RelationWithPatient: req.RelationWithPatient,
			PatientName:         req.PatientName,
			Gender:              req.Gender,
			Age:                 req.Age,
		}
		if err := s.store.CreateFamilyMember(ctx, member); err != nil {
			s.log.Error("Failed to create family member", zap.Error(err), zap.String("user_id", userID.String()))
			return nil, err
		}
		s.log.Info("Family member details created", zap.String("user_id", userID.String()))
		return member, nil
	}

	updated, err := s.store.UpdateFamilyMember(ctx, userID, entity.UpdateFamilyMember{
		Name:                &req.Name,
		ContactNo:           req.ContactNo,
		RelationWithPatient: req.RelationWithPatient,
		PatientName:         req.PatientName,
		Gender:              req.Gender,
		Age:                 req.Age,
	})
	if err != nil {
		s.log.Error("Failed to update family member", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	s.log.Info("Family member details updated", zap.String("user_id", userID.String()))
	return updated, nil
}
