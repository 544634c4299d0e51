package types

// ExecRequest submits one line to a terminal session
type ExecRequest struct {
	Line string `json:"line"`
}

// WSMessage represents a WebSocket message sent by the terminal UI
type WSMessage struct {
	Type      string `json:"type"`
	Line      string `json:"line,omitempty"`
	Direction string `json:"direction,omitempty"`
}
