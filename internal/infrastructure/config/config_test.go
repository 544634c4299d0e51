package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.True(t, cfg.Server.Compression)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Zero(t, cfg.RateLimit.GlobalRequestsPerSecond)

	// CORS config
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)

	// Terminal config
	assert.Empty(t, cfg.Terminal.SeedFile)
	assert.False(t, cfg.Terminal.SharedFS)
	assert.Equal(t, 100, cfg.Terminal.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.Terminal.IdleTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Terminal.StepDelay)
	assert.Equal(t, time.Minute, cfg.Terminal.ReapInterval)
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOrDefaultFallsBackOnInvalidValue(t *testing.T) {
	t.Setenv("TERMINAL_MAX_SESSIONS", "many")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 100, cfg.Terminal.MaxSessions)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                    "9000",
		"HOST":                    "127.0.0.1",
		"SHUTDOWN_TIMEOUT":        "3s",
		"LOG_LEVEL":               "debug",
		"LOG_DEV":                 "true",
		"RATE_LIMIT_RPS":          "500",
		"RATE_LIMIT_BURST":        "1000",
		"RATE_LIMIT_ENABLED":      "false",
		"RATE_LIMIT_GLOBAL_RPS":   "50",
		"RATE_LIMIT_GLOBAL_BURST": "75",
		"CORS_ORIGINS":            "https://jaimin.dev,http://localhost:5173",
		"TERMINAL_SEED_FILE":      "/etc/portfolio/seed.yaml",
		"TERMINAL_SHARED_FS":      "true",
		"TERMINAL_MAX_SESSIONS":   "5",
		"TERMINAL_IDLE_TIMEOUT":   "10m",
		"TERMINAL_STEP_DELAY":     "250ms",
		"TERMINAL_REAP_INTERVAL":  "30s",
		"HTTP_COMPRESSION":        "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.Compression)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.RateLimit.GlobalRequestsPerSecond)
	assert.Equal(t, 75, cfg.RateLimit.GlobalBurst)

	assert.Equal(t, []string{"https://jaimin.dev", "http://localhost:5173"}, cfg.CORS.Origins)

	assert.Equal(t, "/etc/portfolio/seed.yaml", cfg.Terminal.SeedFile)
	assert.True(t, cfg.Terminal.SharedFS)
	assert.Equal(t, 5, cfg.Terminal.MaxSessions)
	assert.Equal(t, 10*time.Minute, cfg.Terminal.IdleTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Terminal.StepDelay)
	assert.Equal(t, 30*time.Second, cfg.Terminal.ReapInterval)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 100, cfg.Terminal.MaxSessions)
}

func TestTerminalManagerConfig(t *testing.T) {
	tc := TerminalConfig{
		SharedFS:     true,
		MaxSessions:  7,
		IdleTimeout:  time.Hour,
		StepDelay:    time.Second,
		ReapInterval: time.Minute,
	}

	mc := tc.Manager()
	assert.True(t, mc.SharedFS)
	assert.Equal(t, 7, mc.MaxSessions)
	assert.Equal(t, time.Hour, mc.IdleTimeout)
	assert.Equal(t, time.Second, mc.StepDelay)
}
