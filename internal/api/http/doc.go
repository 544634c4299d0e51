// Package http provides the REST API for terminal sessions.
//
// Endpoints:
//   - Health: /, /health, /stats
//   - Profile: /profile
//   - Sessions: /terminal/sessions, /terminal/sessions/:id
//   - Input: /terminal/sessions/:id/exec, /terminal/sessions/:id/history/:direction
//   - Output: /terminal/sessions/:id/output?since=N&limit=M
//   - Explorer: /terminal/sessions/:id/fs?path=...
//
// Unknown sessions answer 404, malformed input 400, and the session cap 429.
//
// Example Usage:
//
//	handlers := http.NewHandlers(manager, metrics, logger)
//	handlers.Register(router)
package http
