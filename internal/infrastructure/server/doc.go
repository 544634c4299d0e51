// Package server is the composition root of the terminal backend.
//
// NewServer builds the logger, metrics, seed document and session manager
// from configuration and mounts the REST, WebSocket and /metrics routes
// behind the middleware stack. Run serves until its context is cancelled
// and keeps the idle-session reaper alive for as long as it serves.
package server
