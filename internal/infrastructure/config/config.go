package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/jai-git4208/portfolio-os/backend/internal/terminal"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Terminal  TerminalConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	Compression     bool          `envconfig:"HTTP_COMPRESSION" default:"true"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`

	// GlobalRequestsPerSecond caps all clients together; 0 disables it.
	GlobalRequestsPerSecond int `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0"`
	GlobalBurst             int `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"0"`
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// TerminalConfig holds session and seed configuration.
type TerminalConfig struct {
	SeedFile     string        `envconfig:"TERMINAL_SEED_FILE"`
	SharedFS     bool          `envconfig:"TERMINAL_SHARED_FS" default:"false"`
	MaxSessions  int           `envconfig:"TERMINAL_MAX_SESSIONS" default:"100"`
	IdleTimeout  time.Duration `envconfig:"TERMINAL_IDLE_TIMEOUT" default:"30m"`
	StepDelay    time.Duration `envconfig:"TERMINAL_STEP_DELAY" default:"500ms"`
	ReapInterval time.Duration `envconfig:"TERMINAL_REAP_INTERVAL" default:"1m"`
}

// Manager converts the section into the session manager's configuration.
func (t TerminalConfig) Manager() terminal.Config {
	return terminal.Config{
		SharedFS:    t.SharedFS,
		MaxSessions: t.MaxSessions,
		IdleTimeout: t.IdleTimeout,
		StepDelay:   t.StepDelay,
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			Compression:     true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Terminal: TerminalConfig{
			SharedFS:     false,
			MaxSessions:  100,
			IdleTimeout:  30 * time.Minute,
			StepDelay:    500 * time.Millisecond,
			ReapInterval: time.Minute,
		},
	}
}
