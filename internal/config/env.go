package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; a missing file is not
// an error.
//
// Recognized variables:
//
//	BACKOFFICE_API_URL  root URL of the backend
//	BACKOFFICE_DB       path to the credentials database
//	BACKOFFICE_TIMEOUT  request timeout as a Go duration ("3s", "500ms")
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BACKOFFICE_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BACKOFFICE_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("BACKOFFICE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
