package ws

import (
	"time"

	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
)

// Client → server message types
const (
	MsgExec    = "exec"
	MsgHistory = "history"
	MsgPing    = "ping"
)

// Server → client event types
const (
	EventReady   = "ready"
	EventLine    = "line"
	EventResult  = "result"
	EventHistory = "history"
	EventPong    = "pong"
	EventError   = "error"
	EventClosed  = "closed"
)

// Event is one frame sent to the client
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Line      *shell.Line `json:"line,omitempty"`
	Seq       uint64      `json:"seq,omitempty"`
	Command   string      `json:"command,omitempty"`
	Status    string      `json:"status,omitempty"`
	Cwd       string      `json:"cwd,omitempty"`
	Prompt    string      `json:"prompt,omitempty"`
	Input     string      `json:"input,omitempty"`
	Cleared   bool        `json:"cleared,omitempty"`
	Exited    bool        `json:"exited,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func lineEvent(line shell.Line) Event {
	return Event{Type: EventLine, Line: &line, Timestamp: line.Time.Unix()}
}

// resultEvent carries everything but the lines, which arrive as line events.
// seq is the last log line written before the result.
func resultEvent(res shell.Result, seq uint64) Event {
	return Event{
		Type:      EventResult,
		Seq:       seq,
		Command:   res.Command,
		Status:    string(res.Status),
		Cwd:       res.Cwd,
		Prompt:    res.Prompt,
		Cleared:   res.Cleared,
		Exited:    res.Exited,
		Timestamp: time.Now().Unix(),
	}
}

func errorEvent(msg string) Event {
	return Event{Type: EventError, Error: msg, Timestamp: time.Now().Unix()}
}
