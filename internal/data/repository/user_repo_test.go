package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/storage"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewStore(mock, zap.NewNop(), time.Second)
}

func userColumns() []string {
	return []string{"id", "username", "password", "role", "created_at", "updated_at"}
}

func TestUserFound(t *testing.T) {
	mock, store := newMockStore(t)

	id := uuid.New()
	password := "hashed"
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "budi", &password, (*entity.UserRole)(nil), now, now))

	user, err := store.User(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "budi", user.Username)
	require.NotNil(t, user.Password)
	require.Nil(t, user.Role)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotFoundIsNil(t *testing.T) {
	mock, store := newMockStore(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	user, err := store.User(context.Background(), id)
	require.NoError(t, err)
	require.Nil(t, user)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateMapsToConflict(t *testing.T) {
	mock, store := newMockStore(t)

	now := time.Now()
	password := "hashed"
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: "budi",
		Password: &password,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.Password, user.Role, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := store.CreateUser(context.Background(), user)
	require.ErrorIs(t, err, storage.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRole(t *testing.T) {
	mock, store := newMockStore(t)

	id := uuid.New()
	role := entity.RoleDoctor
	now := time.Now()

	mock.ExpectQuery("UPDATE users SET role = \\$2, updated_at = NOW\\(\\) WHERE id = \\$1").
		WithArgs(id, role).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "budi", (*string)(nil), &role, now, now))

	user, err := store.UpdateUserRole(context.Background(), id, role)
	require.NoError(t, err)
	require.Equal(t, entity.RoleDoctor, *user.Role)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRoleMissingUser(t *testing.T) {
	mock, store := newMockStore(t)

	id := uuid.New()
	mock.ExpectQuery("UPDATE users SET role = \\$2").
		WithArgs(id, entity.RolePatient).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.UpdateUserRole(context.Background(), id, entity.RolePatient)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeSessionMissingMapsToNotFound(t *testing.T) {
	mock, store := newMockStore(t)

	token := uuid.New().String()
	mock.ExpectExec("UPDATE sessions SET revoked_at = NOW\\(\\)").
		WithArgs(token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.RevokeSession(context.Background(), token)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
