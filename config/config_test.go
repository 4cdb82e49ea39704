package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "biorhythm.db", cfg.DatabasePath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 24, cfg.JWTExpiryHours)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "72")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, 72, cfg.JWTExpiryHours)
}

func TestGetEnvIntOrDefaultRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "not-a-number")
	assert.Equal(t, 24, getEnvIntOrDefault("JWT_EXPIRY_HOURS", 24))

	t.Setenv("JWT_EXPIRY_HOURS", "-3")
	assert.Equal(t, 24, getEnvIntOrDefault("JWT_EXPIRY_HOURS", 24))
}
