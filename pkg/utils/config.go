package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Google   GoogleConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	// URL kosong berarti mode memory-only, bukan fatal error
	URL                 string
	MaxConns            int32
	QueryTimeoutSeconds int
	HealthCheckSeconds  int
}

type SessionConfig struct {
	ExpiryHours int
	CookieName  string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Configured reports whether the Google OAuth credentials are present.
func (g GoogleConfig) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "meditrack")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("QUERY_TIMEOUT_SECONDS", 5)
	viper.SetDefault("HEALTH_CHECK_SECONDS", 30)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_COOKIE_NAME", "meditrack_session")

	// File .env optional, env vars saja cukup di deployment
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			URL:                 viper.GetString("DATABASE_URL"),
			MaxConns:            viper.GetInt32("DB_MAX_CONNS"),
			QueryTimeoutSeconds: viper.GetInt("QUERY_TIMEOUT_SECONDS"),
			HealthCheckSeconds:  viper.GetInt("HEALTH_CHECK_SECONDS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			CookieName:  viper.GetString("SESSION_COOKIE_NAME"),
		},
		Google: GoogleConfig{
			ClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  viper.GetString("GOOGLE_CALLBACK_URL"),
		},
	}

	return config, nil
}
