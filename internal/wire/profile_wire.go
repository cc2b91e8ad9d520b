package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meditrack/internal/adaptor"
	"meditrack/internal/data/hybrid"
	"meditrack/pkg/middleware"
	"meditrack/pkg/utils"
)

// wireProfile configures role-selection dan details routes, semuanya protected
func wireProfile(
	r chi.Router,
	profileHandler *adaptor.ProfileHandler,
	store *hybrid.Store,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(store, config.Session.CookieName, log)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/api/auth/role", profileHandler.GetRole)
		r.Post("/api/auth/role", profileHandler.SetRole)
		r.Get("/api/auth/details", profileHandler.GetDetails)
		r.Post("/api/auth/details", profileHandler.SetDetails)
	})
}
