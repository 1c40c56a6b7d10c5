package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingualoop/lingualoop-api/internal/config"
)

// setRequiredEnv sets the minimum environment needed for a valid load.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LINGUALOOP_DATABASE_URL", "postgres://localhost:5432/lingualoop")
	t.Setenv("LINGUALOOP_AUTH_JWT_SECRET", "thisisa32characterlongsecretkey!")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 5, cfg.Gamification.MaxHearts)
	assert.Equal(t, 30, cfg.Gamification.HeartRefillMinutes)
	assert.Equal(t, 10, cfg.Gamification.DefaultLessonXP)
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LINGUALOOP_SERVER_PORT", "9090")
	t.Setenv("LINGUALOOP_SERVER_LOG_LEVEL", "debug")
	t.Setenv("LINGUALOOP_GAMIFICATION_MAX_HEARTS", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 3, cfg.Gamification.MaxHearts)
	assert.Equal(t, "postgres://localhost:5432/lingualoop", cfg.Database.URL)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("LINGUALOOP_AUTH_JWT_SECRET", "thisisa32characterlongsecretkey!")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("LINGUALOOP_DATABASE_URL", "postgres://localhost:5432/lingualoop")
	t.Setenv("LINGUALOOP_AUTH_JWT_SECRET", "too-short")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LINGUALOOP_SERVER_LOG_LEVEL", "verbose")

	_, err := config.Load()
	require.Error(t, err)
}
