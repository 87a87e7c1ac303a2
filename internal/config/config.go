// Package config resolves client configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultTimeout bounds every request to the library API.
	DefaultTimeout = 10 * time.Second

	defaultBaseURL = "http://localhost:3000"
)

// Config holds everything the client needs to talk to the library API.
type Config struct {
	// BaseURL of the library API, without trailing slash.
	BaseURL string
	// Timeout applied per HTTP request.
	Timeout time.Duration
	// TokenFile is where the session token string is persisted.
	TokenFile string
}

// Load reads configuration from the environment:
//   - BIBLIO_API_URL (default http://localhost:3000)
//   - BIBLIO_TIMEOUT (Go duration, default 10s)
//   - BIBLIO_TOKEN_FILE (default $XDG_CONFIG_HOME/biblio/token)
//
// A .env file in the working directory is loaded first, if present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:   defaultBaseURL,
		Timeout:   DefaultTimeout,
		TokenFile: defaultTokenFile(),
	}
	if v := os.Getenv("BIBLIO_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BIBLIO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("BIBLIO_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	return cfg
}

func defaultTokenFile() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "biblio", "token")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "biblio", "token")
}
