package terminal

import (
	"errors"
	"fmt"
	"time"

	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrTooManySessions  = errors.New("too many sessions")
	ErrInvalidDirection = errors.New("invalid history direction")
)

// Config controls how sessions are created and retired
type Config struct {
	// SharedFS gives every session the same tree; otherwise each session
	// starts from a freshly seeded one.
	SharedFS    bool
	MaxSessions int
	IdleTimeout time.Duration
	StepDelay   time.Duration
}

// DefaultConfig returns the manager defaults
func DefaultConfig() Config {
	return Config{
		SharedFS:    false,
		MaxSessions: 100,
		IdleTimeout: 30 * time.Minute,
		StepDelay:   shell.DefaultStepDelay,
	}
}

// Direction is a history navigation signal
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// ParseDirection accepts "previous"/"up" and "next"/"down"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "previous", "prev", "up":
		return DirectionPrevious, nil
	case "next", "down":
		return DirectionNext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Recorder receives session and command events, typically for metrics
type Recorder interface {
	SessionOpened()
	SessionClosed(reason string)
	CommandExecuted(command, status string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) SessionOpened()                                {}
func (nopRecorder) SessionClosed(string)                          {}
func (nopRecorder) CommandExecuted(string, string, time.Duration) {}

// Close reasons reported to the Recorder
const (
	ReasonKilled   = "killed"
	ReasonExit     = "exit"
	ReasonIdle     = "idle"
	ReasonShutdown = "shutdown"
)

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID         string       `json:"id"`
	User       string       `json:"user"`
	Cwd        string       `json:"cwd"`
	Prompt     string       `json:"prompt"`
	SharedFS   bool         `json:"shared_fs"`
	History    int          `json:"history"`
	CreatedAt  time.Time    `json:"created_at"`
	LastActive time.Time    `json:"last_active"`
	Lines      []shell.Line `json:"lines,omitempty"`
}
