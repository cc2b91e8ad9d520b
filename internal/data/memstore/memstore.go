// Package memstore adalah fallback storage berbasis map in-process.
// Dipakai waktu database tidak tersedia dan sebagai best-effort mirror
// untuk write yang sukses di database. Isinya hilang saat proses restart.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/storage"
)

// Store menyimpan record dalam map per entity, keyed by id.
// Lookup unique field (username, user_id, token) memakai linear scan —
// dataset fallback kecil, tidak perlu index kedua.
//
// Handler HTTP jalan concurrent, jadi semua akses lewat RWMutex.
type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*entity.User
	patients      map[uuid.UUID]*entity.Patient
	doctors       map[uuid.UUID]*entity.Doctor
	familyMembers map[uuid.UUID]*entity.FamilyMember
	sessions      map[uuid.UUID]*entity.Session
	log           *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		users:         make(map[uuid.UUID]*entity.User),
		patients:      make(map[uuid.UUID]*entity.Patient),
		doctors:       make(map[uuid.UUID]*entity.Doctor),
		familyMembers: make(map[uuid.UUID]*entity.FamilyMember),
		sessions:      make(map[uuid.UUID]*entity.Session),
		log:           log.With(zap.String("storage", "memory")),
	}
}

var _ storage.Storage = (*Store)(nil)

// ==================== USER ====================

func (s *Store) User(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return fmt.Errorf("create user %s: %w", user.Username, storage.ErrConflict)
		}
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *Store) UpdateUserRole(_ context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("update role for user %s: %w", userID.String(), storage.ErrNotFound)
	}

	user.Role = &role
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

// ==================== PATIENT ====================

func (s *Store) PatientByUserID(_ context.Context, userID uuid.UUID) (*entity.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, patient := range s.patients {
		if patient.UserID == userID {
			copied := *patient
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) CreatePatient(_ context.Context, patient *entity.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.patients {
		if existing.UserID == patient.UserID {
			return fmt.Errorf("create patient for user %s: %w", patient.UserID.String(), storage.ErrConflict)
		}
	}

	copied := *patient
	s.patients[patient.ID] = &copied
	return nil
}

func (s *Store) UpdatePatient(_ context.Context, userID uuid.UUID, details entity.UpdatePatient) (*entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, patient := range s.patients {
		if patient.UserID == userID {
			if details.Name != nil {
				patient.Name = *details.Name
			}
			if details.ContactNo != nil {
				patient.ContactNo = details.ContactNo
			}
			if details.Age != nil {
				patient.Age = details.Age
			}
			if details.Gender != nil {
				patient.Gender = details.Gender
			}
			if details.DateOfBirth != nil {
				patient.DateOfBirth = details.DateOfBirth
			}
			if details.Occupation != nil {
				patient.Occupation = details.Occupation
			}
			patient.UpdatedAt = time.Now()

			copied := *patient
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("update patient for user %s: %w", userID.String(), storage.ErrNotFound)
}

// ==================== DOCTOR ====================

func (s *Store) DoctorByUserID(_ context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doctor := range s.doctors {
		if doctor.UserID == userID {
			copied := *doctor
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateDoctor(_ context.Context, doctor *entity.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doctors {
		if existing.UserID == doctor.UserID {
			return fmt.Errorf("create doctor for user %s: %w", doctor.UserID.String(), storage.ErrConflict)
		}
	}

	copied := *doctor
	s.doctors[doctor.ID] = &copied
	return nil
}

func (s *Store) UpdateDoctor(_ context.Context, userID uuid.UUID, details entity.UpdateDoctor) (*entity.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doctor := range s.doctors {
		if doctor.UserID == userID {
			if details.Name != nil {
				doctor.Name = *details.Name
			}
			if details.ContactNo != nil {
				doctor.ContactNo = details.ContactNo
			}
			if details.EmployeeID != nil {
				doctor.EmployeeID = details.EmployeeID
			}
			if details.Gender != nil {
				doctor.Gender = details.Gender
			}
			if details.Age != nil {
				doctor.Age = details.Age
			}
			if details.Experience != nil {
				doctor.Experience = details.Experience
			}
			if details.Qualifications != nil {
				doctor.Qualifications = details.Qualifications
			}
			doctor.UpdatedAt = time.Now()

			copied := *doctor
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("update doctor for user %s: %w", userID.String(), storage.ErrNotFound)
}

// ==================== FAMILY MEMBER ====================

func (s *Store) FamilyMemberByUserID(_ context.Context, userID uuid.UUID) (*entity.FamilyMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.familyMembers {
		if member.UserID == userID {
			copied := *member
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateFamilyMember(_ context.Context, member *entity.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.familyMembers {
		if existing.UserID == member.UserID {
			return fmt.Errorf("create family member for user %s: %w", member.UserID.String(), storage.ErrConflict)
		}
	}

	copied := *member
	s.familyMembers[member.ID] = &copied
	return nil
}

func (s *Store) UpdateFamilyMember(_ context.Context, userID uuid.UUID, details entity.UpdateFamilyMember) (*entity.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, member := range s.familyMembers {
		if member.UserID == userID {
			if details.PatientID != nil {
				member.PatientID = details.PatientID
			}
			if details.Name != nil {
				member.Name = *details.Name
			}
			if details.ContactNo != nil {
				member.ContactNo = details.ContactNo
			}
			if details.RelationWithPatient != nil {
				member.RelationWithPatient = details.RelationWithPatient
			}
			if details.PatientName != nil {
				member.PatientName = details.PatientName
			}
			if details.Gender != nil {
				member.Gender = details.Gender
			}
			if details.Age != nil {
				member.Age = details.Age
			}
			member.UpdatedAt = time.Now()

			copied := *member
			return &copied, nil
		}
	}

	return nil, fmt.Errorf("update family member for user %s: %w", userID.String(), storage.ErrNotFound)
}

// ==================== SESSION ====================

func (s *Store) CreateSession(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *Store) ValidSession(_ context.Context, token string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, session := range s.sessions {
		if session.Token.String() == token &&
			session.RevokedAt == nil &&
			session.ExpiresAt.After(time.Now()) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) RevokeSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.Token.String() == token && session.RevokedAt == nil {
			now := time.Now()
			session.RevokedAt = &now
			return nil
		}
	}
	return fmt.Errorf("revoke session: %w", storage.ErrNotFound)
}

// ==================== HELPER ====================

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
