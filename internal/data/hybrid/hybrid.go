// Package hybrid menyajikan satu storage.Storage yang memilih backing
// store secara transparan: coba Postgres dulu, turun ke in-memory kalau
// gagal, dan naik lagi lewat health probe berkala.
//
// Tidak ada jaminan konsistensi lintas transisi: data yang tertulis
// sebelum demotion tidak dimigrasi ke memory, dan data yang tertulis
// selama fallback tidak dikirim balik ke database saat re-promotion.
// Keputusan ini dicatat di DESIGN.md; operator bisa memantau lewat Mode().
package hybrid

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/storage"
)

// DefaultProbeInterval adalah jarak antar health probe.
const DefaultProbeInterval = 30 * time.Second

// probeUsername adalah harmless read untuk mengecek database hidup lagi.
const probeUsername = "health_check_test"

type Store struct {
	db    storage.Storage // persistent adapter, nil kalau DATABASE_URL tidak diset
	mem   storage.Storage
	useDB atomic.Bool

	probeInterval time.Duration
	log           *zap.Logger
}

// NewStore membangun façade. db nil (atau ping awal gagal) berarti mulai
// langsung di mode memory.
func NewStore(db, mem storage.Storage, probeInterval time.Duration, log *zap.Logger) *Store {
	if probeInterval <= 0 {
		probeInterval = DefaultProbeInterval
	}

	s := &Store{
		db:            db,
		mem:           mem,
		probeInterval: probeInterval,
		log:           log.With(zap.String("storage", "hybrid")),
	}
	s.useDB.Store(db != nil)

	return s
}

var _ storage.Storage = (*Store)(nil)

// Mode melaporkan backing store yang sedang aktif: "database" atau
// "memory". Dipakai /health supaya degraded mode tidak jadi boolean
// tersembunyi.
func (s *Store) Mode() string {
	if s.useDB.Load() {
		return "database"
	}
	return "memory"
}

// domainError mengecek error yang harus diteruskan ke caller apa adanya.
// Conflict dan not-found bukan alasan untuk turun ke memory.
func domainError(err error) bool {
	return errors.Is(err, storage.ErrConflict) || errors.Is(err, storage.ErrNotFound)
}

// fallback menjalankan operasi di database dulu; kalau gagal transient,
// turunkan flag untuk sisa process dan ulangi operasi yang sama di memory.
func fallback[T any](s *Store, op string, dbOp, memOp func() (T, error)) (T, error) {
	if s.useDB.Load() {
		result, err := dbOp()
		if err == nil || domainError(err) {
			return result, err
		}

		s.log.Warn("Database operation failed, falling back to memory storage",
			zap.String("operation", op),
			zap.Error(err),
		)
		s.useDB.Store(false)
	}
	return memOp()
}

// mirror menjalankan write yang sama di memory setelah write database
// sukses. Kegagalan mirror di-log, tidak pernah dikembalikan ke caller —
// copy in-memory cuma degraded-mode cache, bukan source of truth.
func (s *Store) mirror(op string, fn func() error) {
	if err := fn(); err != nil {
		s.log.Warn("Memory mirror write failed",
			zap.String("operation", op),
			zap.Error(err),
		)
	}
}

// Run menjalankan health probe loop sampai ctx selesai. Saat mode memory
// dan persistent adapter ada, lakukan harmless read; sukses berarti
// database hidup lagi dan flag dinaikkan.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckDatabaseHealth(ctx)
		}
	}
}

// CheckDatabaseHealth melakukan satu kali probe. Mengembalikan true kalau
// database sedang (atau kembali) dipakai.
func (s *Store) CheckDatabaseHealth(ctx context.Context) bool {
	if s.useDB.Load() {
		return true
	}
	if s.db == nil {
		return false
	}

	if _, err := s.db.UserByUsername(ctx, probeUsername); err != nil {
		return false
	}

	s.log.Info("Database is back online, switching to database storage")
	s.useDB.Store(true)
	return true
}

// ==================== USER ====================

func (s *Store) User(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return fallback(s, "User",
		func() (*entity.User, error) { return s.db.User(ctx, id) },
		func() (*entity.User, error) { return s.mem.User(ctx, id) },
	)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return fallback(s, "UserByUsername",
		func() (*entity.User, error) { return s.db.UserByUsername(ctx, username) },
		func() (*entity.User, error) { return s.mem.UserByUsername(ctx, username) },
	)
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) error {
	_, err := fallback(s, "CreateUser",
		func() (struct{}, error) {
			if err := s.db.CreateUser(ctx, user); err != nil {
				return struct{}{}, err
			}
			s.mirror("CreateUser", func() error { return s.mem.CreateUser(ctx, user) })
			return struct{}{}, nil
		},
		func() (struct{}, error) { return struct{}{}, s.mem.CreateUser(ctx, user) },
	)
	return err
}

func (s *Store) UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error) {
	return fallback(s, "UpdateUserRole",
		func() (*entity.User, error) {
			user, err := s.db.UpdateUserRole(ctx, userID, role)
			if err != nil {
				return nil, err
			}
			s.mirror("UpdateUserRole", func() error {
				_, err := s.mem.UpdateUserRole(ctx, userID, role)
				return err
			})
			return user, nil
		},
		func() (*entity.User, error) { return s.mem.UpdateUserRole(ctx, userID, role) },
	)
}

// ==================== PATIENT ====================

func (s *Store) PatientByUserID(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	return fallback(s, "PatientByUserID",
		func() (*entity.Patient, error) { return s.db.PatientByUserID(ctx, userID) },
		func() (*entity.Patient, error) { return s.mem.PatientByUserID(ctx, userID) },
	)
}

func (s *Store) CreatePatient(ctx context.Context, patient *entity.Patient) error {
	_, err := fallback(s, "CreatePatient",
		func() (struct{}, error) {
			if err := s.db.CreatePatient(ctx, patient); err != nil {
				return struct{}{}, err
			}
			s.mirror("CreatePatient", func() error { return s.mem.CreatePatient(ctx, patient) })
			return struct{}{}, nil
		},
		func() (struct{}, error) { return struct{}{}, s.mem.CreatePatient(ctx, patient) },
	)
	return err
}

func (s *Store) UpdatePatient(ctx context.Context, userID uuid.UUID, details entity.UpdatePatient) (*entity.Patient, error) {
	return fallback(s, "UpdatePatient",
		func() (*entity.Patient, error) {
			patient, err := s.db.UpdatePatient(ctx, userID, details)
			if err != nil {
				return nil, err
			}
			s.mirror("UpdatePatient", func() error {
				_, err := s.mem.UpdatePatient(ctx, userID, details)
				return err
			})
			return patient, nil
		},
		func() (*entity.Patient, error) { return s.mem.UpdatePatient(ctx, userID, details) },
	)
}

// ==================== DOCTOR ====================

func (s *Store) DoctorByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	return fallback(s, "DoctorByUserID",
		func() (*entity.Doctor, error) { return s.db.DoctorByUserID(ctx, userID) },
		func() (*entity.Doctor, error) { return s.mem.DoctorByUserID(ctx, userID) },
	)
}

func (s *Store) CreateDoctor(ctx context.Context, doctor *entity.Doctor) error {
	_, err := fallback(s, "CreateDoctor",
		func() (struct{}, error) {
			if err := s.db.CreateDoctor(ctx, doctor); err != nil {
				return struct{}{}, err
			}
			s.mirror("CreateDoctor", func() error { return s.mem.CreateDoctor(ctx, doctor) })
			return struct{}{}, nil
		},
		func() (struct{}, error) { return struct{}{}, s.mem.CreateDoctor(ctx, doctor) },
	)
	return err
}

func (s *Store) UpdateDoctor(ctx context.Context, userID uuid.UUID, details entity.UpdateDoctor) (*entity.Doctor, error) {
	return fallback(s, "UpdateDoctor",
		func() (*entity.Doctor, error) {
			doctor, err := s.db.UpdateDoctor(ctx, userID, details)
			if err != nil {
				return nil, err
			}
			s.mirror("UpdateDoctor", func() error {
				_, err := s.mem.UpdateDoctor(ctx, userID, details)
				return err
			})
			return doctor, nil
		},
		func() (*entity.Doctor, error) { return s.mem.UpdateDoctor(ctx, userID, details) },
	)
}

// ==================== FAMILY MEMBER ====================

func (s *Store) FamilyMemberByUserID(ctx context.Context, userID uuid.UUID) (*entity.FamilyMember, error) {
	return fallback(s, "FamilyMemberByUserID",
		func() (*entity.FamilyMember, error) { return s.db.FamilyMemberByUserID(ctx, userID) },
		func() (*entity.FamilyMember, error) { return s.mem.FamilyMemberByUserID(ctx, userID) },
	)
}

func (s *Store) CreateFamilyMember(ctx context.Context, member *entity.FamilyMember) error {
	_, err := fallback(s, "CreateFamilyMember",
		func() (struct{}, error) {
			if err := s.db.CreateFamilyMember(ctx, member); err != nil {
				return struct{}{}, err
			}
			s.mirror("CreateFamilyMember", func() error { return s.mem.CreateFamilyMember(ctx, member) })
			return struct{}{}, nil
		},
		func() (struct{}, error) { return struct{}{}, s.mem.CreateFamilyMember(ctx, member) },
	)
	return err
}

func (s *Store) UpdateFamilyMember(ctx context.Context, userID uuid.UUID, details entity.UpdateFamilyMember) (*entity.FamilyMember, error) {
	return fallback(s, "UpdateFamilyMember",
		func() (*entity.FamilyMember, error) {
			member, err := s.db.UpdateFamilyMember(ctx, userID, details)
			if err != nil {
				return nil, err
			}
			s.mirror("UpdateFamilyMember", func() error {
				_, err := s.mem.UpdateFamilyMember(ctx, userID, details)
				return err
			})
			return member, nil
		},
		func() (*entity.FamilyMember, error) { return s.mem.UpdateFamilyMember(ctx, userID, details) },
	)
}

// ==================== SESSION ====================

func (s *Store) CreateSession(ctx context.Context, session *entity.Session) error {
	_, err := fallback(s, "CreateSession",
		func() (struct{}, error) {
			if err := s.db.CreateSession(ctx, session); err != nil {
				return struct{}{}, err
			}
			s.mirror("CreateSession", func() error { return s.mem.CreateSession(ctx, session) })
			return struct{}{}, nil
		},
		func() (struct{}, error) { return struct{}{}, s.mem.CreateSession(ctx, session) },
	)
	return err
}

func (s *Store) ValidSession(ctx context.Context, token string) (*entity.Session, error) {
	return fallback(s, "ValidSession",
		func() (*entity.Session, error) { return s.db.ValidSession(ctx, token) },
		func() (*entity.Session, error) { return s.mem.ValidSession(ctx, token) },
	)
}

func (s *Store) RevokeSession(ctx context.Context, token string) error {
	_, err := fallback(s, "RevokeSession",
		func() (struct{}, error) {
			if err := s.db.RevokeSession(ctx, token); err != nil {
				return struct{}{}, err
			}
			s.mirror("RevokeSession", func() error { return s.mem.RevokeSession(ctx, token) })
			return struct{}{}, nil
		},
		func() (struct{}, error) { return struct{}{}, s.mem.RevokeSession(ctx, token) },
	)
	return err
}

// ==================== HELPER ====================

func (s *Store) UserWithRole(ctx context.Context, userID uuid.UUID) (*storage.UserWithRole, error) {
	return fallback(s, "UserWithRole",
		func() (*storage.UserWithRole, error) { return s.db.UserWithRole(ctx, userID) },
		func() (*storage.UserWithRole, error) { return s.mem.UserWithRole(ctx, userID) },
	)
}
