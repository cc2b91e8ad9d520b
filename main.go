// main.go
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"meditrack/cmd"
	"meditrack/internal/data/hybrid"
	"meditrack/internal/data/memstore"
	"meditrack/internal/data/repository"
	"meditrack/internal/data/storage"
	"meditrack/internal/wire"
	"meditrack/pkg/database"
	"meditrack/pkg/oauth"
	"meditrack/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database. Gagal konek bukan fatal — server tetap jalan
	// dengan in-memory store dan probe akan promote lagi begitu database
	// kembali sehat.
	var dbStore storage.Storage
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Warn("Database unavailable, starting in memory-only mode", zap.Error(err))
	} else {
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			logger.Warn("Schema setup failed, starting in memory-only mode", zap.Error(err))
		} else {
			cancel()
			queryTimeout := time.Duration(config.Database.QueryTimeoutSeconds) * time.Second
			dbStore = repository.NewStore(db, logger, queryTimeout)
			logger.Info("Database connected successfully")
		}
	}

	// Hybrid store: database-first dengan fallback ke memory
	probeInterval := time.Duration(config.Database.HealthCheckSeconds) * time.Second
	store := hybrid.NewStore(dbStore, memstore.NewStore(logger), probeInterval, logger)

	probeCtx, stopProbe := context.WithCancel(context.Background())
	defer stopProbe()
	go store.Run(probeCtx)

	// Google OAuth optional — nil provider membuat route-nya jawab 500
	google := oauth.NewGoogleProvider(config.Google)
	if google == nil {
		logger.Warn("Google OAuth credentials not set, Google sign-in disabled")
	}

	// Wire all dependencies
	app := wire.Wiring(store, google, config, logger)

	// Start server
	logger.Info("Starting HTTP server",
		zap.String("port", config.App.Port),
		zap.String("storage", store.Mode()),
	)

	cmd.APIServer(app.Router, config.App.Port)
}
