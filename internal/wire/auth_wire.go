package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meditrack/internal/adaptor"
	"meditrack/internal/data/hybrid"
	"meditrack/pkg/middleware"
	"meditrack/pkg/utils"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	store *hybrid.Store,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/login", authHandler.Login)

	// Google OAuth flow — kalau credentials tidak di-set handler jawab 500
	r.Get("/auth/google", authHandler.GoogleLogin)
	r.Get("/auth/google/callback", authHandler.GoogleCallback)

	// Logout membaca token-nya sendiri, cukup tanpa middleware supaya
	// session kadaluarsa tetap bisa "logout"
	r.Post("/api/auth/logout", authHandler.Logout)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(store, config.Session.CookieName, log)).
		Get("/api/auth/user", authHandler.CurrentUser)
}
