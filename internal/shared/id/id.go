// Package id mints the identifiers handed out by the terminal service.
//
// Every ID is a type prefix joined to a ULID with an underscore, so session
// listings sort in creation order and a request ID is never mistaken for a
// session ID in the logs.
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionID identifies a terminal session
type SessionID string

// RequestID identifies one API request
type RequestID string

func (s SessionID) String() string { return string(s) }
func (r RequestID) String() string { return string(r) }

const (
	SessionPrefix = "sess"
	RequestPrefix = "req"
)

// ErrMalformed is returned for strings that are not prefix_ULID.
var ErrMalformed = errors.New("malformed id")

// Generator mints monotonic ULIDs. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator returns a generator seeded from crypto/rand
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

var shared = sync.OnceValue(NewGenerator)

// Next returns prefix_ULID.
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	u := ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
	g.mu.Unlock()
	return prefix + "_" + u.String()
}

// NewSessionID mints a session ID from the shared generator
func NewSessionID() SessionID {
	return SessionID(shared().Next(SessionPrefix))
}

// NewRequestID mints a request ID from the shared generator
func NewRequestID() RequestID {
	return RequestID(shared().Next(RequestPrefix))
}

// ParseSession checks that raw has the shape of a minted session ID.
// It says nothing about whether the session exists.
func ParseSession(raw string) (SessionID, error) {
	if err := check(raw, SessionPrefix); err != nil {
		return "", err
	}
	return SessionID(raw), nil
}

func check(raw, prefix string) error {
	body, ok := strings.CutPrefix(raw, prefix+"_")
	if !ok {
		return fmt.Errorf("%w: %q lacks %s_ prefix", ErrMalformed, raw, prefix)
	}
	if _, err := ulid.ParseStrict(body); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
	}
	return nil
}
