// Package ws streams a terminal session over a WebSocket.
//
// On connect the server sends a ready event, replays the session log after
// ?since=N, then pushes every new line as it is appended, including output
// produced later by delayed commands such as ping.
//
// Message Types (Client → Server):
//   - exec: run {"line": ...}
//   - history: recall {"direction": "previous"|"next"}
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - ready, line, result, history, pong, error, closed
//
// Example Usage:
//
//	handler := ws.NewHandler(manager, metrics, logger, ws.DefaultConfig())
//	handler.Register(router)
package ws
