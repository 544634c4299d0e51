// Package main is the entry point for the portfolio terminal backend.
//
// The server hosts simulated terminal sessions for the Portfolio OS web
// desktop: each session owns a shell over an in-memory filesystem seeded
// with the portfolio owner's profile.
//
// The server provides:
//   - REST API for session lifecycle, command execution and history recall
//   - WebSocket streaming of session output
//   - Prometheus metrics at /metrics
//
// Configuration:
//   - .env file (optional, -env)
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000 -seed ./seed.yaml
//	./server -dev -shared-fs
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
