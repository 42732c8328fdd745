// Package config loads application settings from environment variables,
// with defaults suitable for local development.
package config

import "os"

type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	UploadDir string
	TokenTTL  int // hours
}

func Load() *Config {
	return &Config{
		Port:      envOrDefault("APP_PORT", "3000"),
		DBPath:    envOrDefault("DB_PATH", "database.db"),
		JWTSecret: envOrDefault("JWT_SECRET", "hydrolink-dev-secret"),
		UploadDir: envOrDefault("UPLOAD_DIR", "uploads"),
		TokenTTL:  72,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
