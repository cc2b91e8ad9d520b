package hybrid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/data/memstore"
	"meditrack/internal/data/storage"
)

var errConnRefused = errors.New("dial tcp: connection refused")

// flakyStore membungkus memstore dan bisa disuruh gagal seperti database
// yang koneksinya putus.
type flakyStore struct {
	storage.Storage
	failing bool
}

func (f *flakyStore) User(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.failing {
		return nil, errConnRefused
	}
	return f.Storage.User(ctx, id)
}

func (f *flakyStore) UserByUsername(ctx context.Context, username string) (*entity.User, error) {
	if f.failing {
		return nil, errConnRefused
	}
	return f.Storage.UserByUsername(ctx, username)
}

func (f *flakyStore) CreateUser(ctx context.Context, user *entity.User) error {
	if f.failing {
		return errConnRefused
	}
	return f.Storage.CreateUser(ctx, user)
}

func (f *flakyStore) CreateSession(ctx context.Context, session *entity.Session) error {
	if f.failing {
		return errConnRefused
	}
	return f.Storage.CreateSession(ctx, session)
}

func (f *flakyStore) ValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if f.failing {
		return nil, errConnRefused
	}
	return f.Storage.ValidSession(ctx, token)
}

func newTestUser(username string) *entity.User {
	now := time.Now()
	return &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username: username,
	}
}

func TestModeWithoutDatabase(t *testing.T) {
	store := NewStore(nil, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	require.Equal(t, "memory", store.Mode())

	// Tanpa persistent adapter probe tidak pernah promote
	require.False(t, store.CheckDatabaseHealth(context.Background()))
	require.Equal(t, "memory", store.Mode())
}

func TestWritesServedByMemoryWhenNoDatabase(t *testing.T) {
	store := NewStore(nil, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	user := newTestUser("budi")
	require.NoError(t, store.CreateUser(ctx, user))

	found, err := store.UserByUsername(ctx, "budi")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)
}

func TestDemoteOnTransientError(t *testing.T) {
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	store := NewStore(db, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	require.Equal(t, "database", store.Mode())

	// Database tumbang di tengah jalan
	db.failing = true

	// Operasi yang gagal tetap dijawab — diulang di memory
	user := newTestUser("saat-tumbang")
	require.NoError(t, store.CreateUser(ctx, user))
	require.Equal(t, "memory", store.Mode())

	// Operasi berikutnya langsung ke memory tanpa menyentuh database
	found, err := store.UserByUsername(ctx, "saat-tumbang")
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestDataBeforeDemotionNotMigrated(t *testing.T) {
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	store := NewStore(db, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	// Tertulis waktu masih database mode — ikut ter-mirror ke memory
	mirrored := newTestUser("ter-mirror")
	require.NoError(t, store.CreateUser(ctx, mirrored))

	db.failing = true
	store.useDB.Store(false)

	// Mirror membuat record tetap terbaca setelah demotion
	found, err := store.UserByUsername(ctx, "ter-mirror")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, mirrored.ID, found.ID)
}

func TestDomainErrorDoesNotDemote(t *testing.T) {
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	store := NewStore(db, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, newTestUser("budi")))

	// Duplicate username adalah domain error, bukan sinyal database sakit
	err := store.CreateUser(ctx, newTestUser("budi"))
	require.ErrorIs(t, err, storage.ErrConflict)
	require.Equal(t, "database", store.Mode())
}

func TestPromotionAfterRecovery(t *testing.T) {
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	store := NewStore(db, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	db.failing = true
	require.NoError(t, store.CreateUser(ctx, newTestUser("selama-fallback")))
	require.Equal(t, "memory", store.Mode())

	// Probe selama database masih mati tidak mengubah apa-apa
	require.False(t, store.CheckDatabaseHealth(ctx))
	require.Equal(t, "memory", store.Mode())

	// Database pulih, probe berikutnya promote lagi
	db.failing = false
	require.True(t, store.CheckDatabaseHealth(ctx))
	require.Equal(t, "database", store.Mode())

	// Data selama fallback tidak di-replay ke database
	found, err := store.UserByUsername(ctx, "selama-fallback")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestMirrorFailureDoesNotFailWrite(t *testing.T) {
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	mem := memstore.NewStore(zap.NewNop())
	store := NewStore(db, mem, time.Minute, zap.NewNop())
	ctx := context.Background()

	// Seed memory dengan username yang sama supaya mirror-nya conflict
	pre := newTestUser("bentrok")
	require.NoError(t, mem.CreateUser(ctx, pre))

	// Write database sukses walau mirror gagal
	err := store.CreateUser(ctx, newTestUser("bentrok"))
	require.NoError(t, err)
	require.Equal(t, "database", store.Mode())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := NewStore(nil, memstore.NewStore(zap.NewNop()), 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("probe loop did not stop after cancel")
	}
}

func TestSessionFlowAcrossDemotion(t *testing.T) {
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	store := NewStore(db, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uuid.New(),
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, store.CreateSession(ctx, session))

	db.failing = true

	// Session yang ter-mirror tetap valid setelah demotion — login tidak putus
	found, err := store.ValidSession(ctx, session.Token.String())
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, session.UserID, found.UserID)
	require.Equal(t, "memory", store.Mode())
}

func TestProbeUsesHarmlessRead(t *testing.T) {
	// Probe tidak boleh menulis apa-apa — cukup cek tidak ada user baru
	db := &flakyStore{Storage: memstore.NewStore(zap.NewNop())}
	store := NewStore(db, memstore.NewStore(zap.NewNop()), time.Minute, zap.NewNop())
	ctx := context.Background()

	store.useDB.Store(false)
	require.True(t, store.CheckDatabaseHealth(ctx))

	found, err := db.UserByUsername(ctx, probeUsername)
	require.NoError(t, err)
	require.Nil(t, found)
}
