package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/storage"
)

func newTestStore() *Store {
	return NewStore(zap.NewNop())
}

func newTestUser(username string) *entity.User {
	now := time.Now()
	password := "hashed-password"
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Password: &password,
	}
}

func TestCreateAndFindUser(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := newTestUser("budi")
	require.NoError(t, store.CreateUser(ctx, user))

	found, err := store.User(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "budi", found.Username)

	byName, err := store.UserByUsername(ctx, "budi")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, user.ID, byName.ID)

	// Missing user is nil, nil — bukan error
	missing, err := store.User(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newTestUser("budi")))

	err := store.CreateUser(ctx, newTestUser("budi"))
	require.ErrorIs(t, err, storage.ErrConflict)
}

func TestUpdateUserRole(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := newTestUser("siti")
	require.NoError(t, store.CreateUser(ctx, user))

	updated, err := store.UpdateUserRole(ctx, user.ID, entity.RoleDoctor)
	require.NoError(t, err)
	require.NotNil(t, updated.Role)
	require.Equal(t, entity.RoleDoctor, *updated.Role)

	// Overwrite role kedua kali tetap sukses
	updated, err = store.UpdateUserRole(ctx, user.ID, entity.RolePatient)
	require.NoError(t, err)
	require.Equal(t, entity.RolePatient, *updated.Role)

	_, err = store.UpdateUserRole(ctx, uuid.New(), entity.RoleDoctor)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoredCopyIsIsolated(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := newTestUser("eka")
	require.NoError(t, store.CreateUser(ctx, user))

	// Mutasi struct caller tidak boleh bocor ke store
	user.Username = "diubah"

	found, err := store.User(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "eka", found.Username)
}

func TestPatientLifecycle(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := newTestUser("pasien")
	require.NoError(t, store.CreateUser(ctx, user))

	age := 34
	now := time.Now()
	patient := &entity.Patient{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: user.ID,
		Name:   "Pasien Satu",
		Age:    &age,
	}
	require.NoError(t, store.CreatePatient(ctx, patient))

	// Satu user satu profile row
	dup := &entity.Patient{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: user.ID,
		Name:   "Duplikat",
	}
	require.ErrorIs(t, store.CreatePatient(ctx, dup), storage.ErrConflict)

	// Partial update: field nil tidak menyentuh nilai lama
	occupation := "guru"
	updated, err := store.UpdatePatient(ctx, user.ID, entity.UpdatePatient{
		Occupation: &occupation,
	})
	require.NoError(t, err)
	require.Equal(t, "Pasien Satu", updated.Name)
	require.Equal(t, 34, *updated.Age)
	require.Equal(t, "guru", *updated.Occupation)

	_, err = store.UpdatePatient(ctx, uuid.New(), entity.UpdatePatient{})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := newTestUser("sesi")
	require.NoError(t, store.CreateUser(ctx, user))

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, store.CreateSession(ctx, session))

	found, err := store.ValidSession(ctx, session.Token.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.UserID)

	require.NoError(t, store.RevokeSession(ctx, session.Token.String()))

	// Revoked session tidak valid lagi
	found, err = store.ValidSession(ctx, session.Token.String())
	require.NoError(t, err)
	require.Nil(t, found)

	require.ErrorIs(t, store.RevokeSession(ctx, session.Token.String()), storage.ErrNotFound)
}

func TestExpiredSessionNotValid(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uuid.New(),
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, store.CreateSession(ctx, session))

	found, err := store.ValidSession(ctx, session.Token.String())
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestUserWithRole(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	user := newTestUser("dokter")
	require.NoError(t, store.CreateUser(ctx, user))

	// Role belum dipilih: RoleData kosong
	result, err := store.UserWithRole(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Nil(t, result.User.Role)
	require.Nil(t, result.RoleData)

	_, err = store.UpdateUserRole(ctx, user.ID, entity.RoleDoctor)
	require.NoError(t, err)

	// Role ada tapi details belum disubmit: RoleData tetap nil
	result, err = store.UserWithRole(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, result.RoleData)

	now := time.Now()
	doctor := &entity.Doctor{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID: user.ID,
		Name:   "dr. Ahmad",
	}
	require.NoError(t, store.CreateDoctor(ctx, doctor))

	result, err = store.UserWithRole(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, result.RoleData)
	roleData, ok := result.RoleData.(*entity.Doctor)
	require.True(t, ok)
	require.Equal(t, "dr. Ahmad", roleData.Name)

	// User tidak ada: nil, nil
	result, err = store.UserWithRole(ctx, uuid.New())
	require.NoError(t, err)
	require.Nil(t, result)
}
