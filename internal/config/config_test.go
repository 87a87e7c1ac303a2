package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BIBLIO_API_URL", "")
	t.Setenv("BIBLIO_TIMEOUT", "")
	t.Setenv("BIBLIO_TOKEN_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Load()
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "token", filepath.Base(cfg.TokenFile))
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BIBLIO_API_URL", "https://biblioteca.example.com")
	t.Setenv("BIBLIO_TIMEOUT", "3s")
	t.Setenv("BIBLIO_TOKEN_FILE", "/tmp/tok")

	cfg := Load()
	assert.Equal(t, "https://biblioteca.example.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	t.Setenv("BIBLIO_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
