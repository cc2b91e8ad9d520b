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
	"meditrack/pkg/utils"
)

// ErrInvalidCredentials dikembalikan untuk username tidak dikenal,
// password salah, atau password login ke akun OAuth-only. Satu error
// untuk semuanya supaya response tidak membocorkan akun mana yang ada.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ClientInfo membawa metadata request untuk session record.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Signup(ctx context.Context, username, password string, client ClientInfo) (*entity.User, *entity.Session, error)
	Login(ctx context.Context, username, password string, client ClientInfo) (*entity.User, *entity.Session, error)
	LoginWithGoogle(ctx context.Context, subject string, client ClientInfo) (*entity.User, *entity.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

type authService struct {
	store  storage.Storage
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(store storage.Storage, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		store:  store,
		config: config,
		log:    log,
	}
}

func (s *authService) Signup(ctx context.Context, username, password string, client ClientInfo) (*entity.User, *entity.Session, error) {
	// 1. Cek username sudah dipakai
	existing, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", username))
		return nil, nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("username %s: %w", username, storage.ErrConflict)
	}

	// 2. Hash password
	hashed, err := utils.HashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Create user — role tetap kosong sampai role-selection step
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Password: &hashed,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, storage.ErrConflict) {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("username", username))
		}
		return nil, nil, err
	}

	// 4. Auto login setelah signup
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Warn("Failed to create session after signup",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Lanjut tanpa session
		session = nil
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return user, session, nil
}

func (s *authService) Login(ctx context.Context, username, password string, client ClientInfo) (*entity.User, *entity.Session, error) {
	// 1. Find user
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", username))
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", username))
		return nil, nil, ErrInvalidCredentials
	}

	// 2. Akun OAuth (password nil) tidak bisa password login
	if user.Password == nil {
		s.log.Warn("Password login attempted on OAuth-only account",
			zap.String("user_id", user.ID.String()))
		return nil, nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(password, *user.Password) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, nil, ErrInvalidCredentials
	}

	// 4. Create session
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return user, session, nil
}

// LoginWithGoogle membuat user baru untuk Google subject yang belum ada
// (username = subject id, password nil) atau login ke user yang sudah ada.
func (s *authService) LoginWithGoogle(ctx context.Context, subject string, client ClientInfo) (*entity.User, *entity.Session, error) {
	user, err := s.store.UserByUsername(ctx, subject)
	if err != nil {
		s.log.Error("Failed to find OAuth user", zap.Error(err))
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: subject,
			Password: nil, // identity-provider account
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			s.log.Error("Failed to create OAuth user", zap.Error(err))
			return nil, nil, err
		}
		s.log.Info("OAuth user created", zap.String("user_id", user.ID.String()))
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Error("Failed to create session for OAuth login",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.store.RevokeSession(ctx, token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Session sudah tidak valid — logout tetap dianggap sukses
			return nil
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.store.User(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load current user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), storage.ErrNotFound)
	}
	return user, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		session.IPAddress = &client.IPAddress
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
