// Package config provides 12-factor configuration for the portfolio terminal backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// The server binary loads a .env file first and lets CLI flags override the result.
//
// Configuration Sections:
//   - Server: HTTP listen address and shutdown grace period
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - CORS: Allowed browser origins
//   - Terminal: Seed file, shared filesystem mode, session cap and timings
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	manager, err := terminal.NewManager(doc, cfg.Terminal.Manager())
//
// Environment Variables:
//   - PORT, HOST, SHUTDOWN_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS (comma separated)
//   - TERMINAL_SEED_FILE, TERMINAL_SHARED_FS, TERMINAL_MAX_SESSIONS
//   - TERMINAL_IDLE_TIMEOUT, TERMINAL_STEP_DELAY, TERMINAL_REAP_INTERVAL
package config
