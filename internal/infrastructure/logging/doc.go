// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components receive a named child logger; terminal sessions add a
// session_id field so every line a session produces can be correlated.
//
// Example Usage:
//
//	logger, err := logging.New(logging.ForMode(cfg.Logging.Development, cfg.Logging.Level))
//	logger.Info("Server starting", zap.String("port", "8000"))
//	manager.WithLogger(logger.Component("terminal"))
package logging
