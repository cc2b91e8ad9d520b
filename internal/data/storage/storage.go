package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"meditrack/internal/data/entity"
)

// Sentinel errors supaya adaptor bisa pakai errors.Is, bukan string matching.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrUnavailable = errors.New("database not available")
)

// Storage adalah satu kontrak untuk semua backing store (Postgres,
// in-memory, dan hybrid façade di atasnya). Caller tidak pernah menyentuh
// adapter langsung.
//
// Konvensi: read yang tidak menemukan row mengembalikan (nil, nil);
// update pada row yang tidak ada mengembalikan ErrNotFound.
type Storage interface {
	// User operations
	User(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UserByUsername(ctx context.Context, username string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) error
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error)

	// Patient operations
	PatientByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error)
	CreatePatient(ctx context.Context, patient *entity.Patient) error
	UpdatePatient(ctx context.Context, userID uuid.UUID, details entity.UpdatePatient) (*entity.Patient, error)

	// Doctor operations
	DoctorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	CreateDoctor(ctx context.Context, doctor *entity.Doctor) error
	UpdateDoctor(ctx context.Context, userID uuid.UUID, details entity.UpdateDoctor) (*entity.Doctor, error)

	// Family member operations
	FamilyMemberByUserID(ctx context.Context, userID uuid.UUID) (*entity.FamilyMember, error)
	CreateFamilyMember(ctx context.Context, member *entity.FamilyMember) error
	UpdateFamilyMember(ctx context.Context, userID uuid.UUID, details entity.UpdateFamilyMember) (*entity.FamilyMember, error)

	// Session operations
	CreateSession(ctx context.Context, session *entity.Session) error
	ValidSession(ctx context.Context, token string) (*entity.Session, error)
	RevokeSession(ctx context.Context, token string) error

	// Helper
	UserWithRole(ctx context.Context, userID uuid.UUID) (*UserWithRole, error)
}

// UserWithRole menggabungkan user dengan profile row sesuai role-nya.
// RoleData nil kalau role belum dipilih atau details belum diisi.
type UserWithRole struct {
	User     *entity.User
	RoleData any // *entity.Patient | *entity.Doctor | *entity.FamilyMember
}
