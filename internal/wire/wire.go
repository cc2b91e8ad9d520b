package wire

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"meditrack/internal/adaptor"
	"meditrack/internal/data/hybrid"
	"meditrack/internal/usecase"
	"meditrack/pkg/middleware"
	"meditrack/pkg/oauth"
	"meditrack/pkg/utils"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(store *hybrid.Store, google *oauth.GoogleProvider, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(store, config, logger)

	handler := &adaptor.Handler{
		Auth:    adaptor.NewAuthHandler(service.Auth, google, config, logger),
		Profile: adaptor.NewProfileHandler(service.Profile, logger),
		Site:    adaptor.NewSiteHandler(logger),
	}

	router := setupRouter(handler, store, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	store *hybrid.Store,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, store, config, logger)
	wireProfile(r, handler.Profile, store, config, logger)
	wireSite(r, handler.Site)

	// Health check: status HTTP selalu 200 selama proses hidup, field
	// storage menunjukkan backend yang sedang aktif
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"storage": store.Mode(),
		})
	})

	return r
}
