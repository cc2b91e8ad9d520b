package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"meditrack/internal/data/storage"
	"meditrack/pkg/database"
)

// DefaultQueryTimeout membatasi setiap query ke database.
// Timeout dianggap transient failure — hybrid store yang memutuskan fallback.
const DefaultQueryTimeout = 5 * time.Second

// Store adalah persistent adapter di atas Postgres.
// Implementasi storage.Storage; methods tersebar per entity
// (user_repo.go, patient_repo.go, dst).
type Store struct {
	db      database.PgxIface
	log     *zap.Logger
	timeout time.Duration
}

func NewStore(db database.PgxIface, log *zap.Logger, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Store{
		db:      db,
		log:     log.With(zap.String("storage", "postgres")),
		timeout: timeout,
	}
}

// DB mengembalikan connection handle, dipakai hybrid store untuk health probe.
func (s *Store) DB() database.PgxIface {
	return s.db
}

// opCtx membungkus setiap operasi dengan query timeout.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// uniqueViolation mengecek Postgres error code 23505 (unique_violation).
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ storage.Storage = (*Store)(nil)
