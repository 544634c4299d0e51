package terminal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jai-git4208/portfolio-os/backend/internal/seed"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/id"
	"github.com/jai-git4208/portfolio-os/backend/internal/shell"
	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

// entry is a live session plus bookkeeping
type entry struct {
	id         string
	session    *shell.Session
	createdAt  time.Time
	lastActive atomic.Int64
}

func (e *entry) touch(now time.Time) {
	e.lastActive.Store(now.UnixNano())
}

func (e *entry) idleSince() time.Time {
	return time.Unix(0, e.lastActive.Load())
}

// Manager manages terminal sessions
type Manager struct {
	doc    *seed.Document
	cfg    Config
	shared *vfs.FileSystem

	sessions sync.Map // map[string]*entry
	count    atomic.Int64
	createMu sync.Mutex

	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time
}

// NewManager creates a session manager. In shared mode the seed tree is
// built once here and handed to every session.
func NewManager(doc *seed.Document, cfg Config) (*Manager, error) {
	if doc == nil {
		return nil, fmt.Errorf("terminal: seed document is required")
	}
	if cfg.StepDelay <= 0 {
		cfg.StepDelay = shell.DefaultStepDelay
	}

	m := &Manager{
		doc:      doc,
		cfg:      cfg,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		now:      time.Now,
	}

	if cfg.SharedFS {
		fs, err := doc.Build()
		if err != nil {
			return nil, fmt.Errorf("terminal: build shared filesystem: %w", err)
		}
		m.shared = fs
	}
	return m, nil
}

// WithLogger sets the logger
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithMetrics sets the recorder for session and command events
func (m *Manager) WithMetrics(r Recorder) *Manager {
	if r != nil {
		m.recorder = r
	}
	return m
}

// Document returns the seed every session is built from
func (m *Manager) Document() *seed.Document {
	return m.doc
}

// CreateSession starts a new session at the home directory
func (m *Manager) CreateSession() (*SessionInfo, error) {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	if m.cfg.MaxSessions > 0 && int(m.count.Load()) >= m.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	fs := m.shared
	if fs == nil {
		built, err := m.doc.Build()
		if err != nil {
			return nil, fmt.Errorf("terminal: build filesystem: %w", err)
		}
		fs = built
	}

	sessionID := string(id.NewSessionID())
	logger := m.logger.With(zap.String("session_id", sessionID))

	session := shell.NewSession(fs, shell.Environment{
		User:     m.doc.User,
		Hostname: m.doc.Hostname,
		Home:     m.doc.Home(),
		Version:  m.doc.Version,
		Profile:  m.doc.Profile,
	}, shell.Options{
		StepDelay: m.cfg.StepDelay,
		Now:       m.now,
		Logger:    logger,
	})

	e := &entry{id: sessionID, session: session, createdAt: m.now()}
	e.touch(e.createdAt)

	m.sessions.Store(sessionID, e)
	m.count.Add(1)
	m.recorder.SessionOpened()
	logger.Info("Session created", zap.Bool("shared_fs", m.shared != nil))

	info := m.info(e)
	info.Lines = session.Log().Lines()
	return info, nil
}

// Session returns the shell session for an id
func (m *Manager) Session(sessionID string) (*shell.Session, error) {
	e, err := m.load(sessionID)
	if err != nil {
		return nil, err
	}
	return e.session, nil
}

// Execute runs one line in a session. A session whose command exits is removed.
func (m *Manager) Execute(sessionID, line string) (shell.Result, error) {
	e, err := m.load(sessionID)
	if err != nil {
		return shell.Result{}, err
	}
	e.touch(m.now())

	start := time.Now()
	res := e.session.Execute(line)
	if res.Status != shell.StatusEmpty && res.Status != shell.StatusClosed {
		m.recorder.CommandExecuted(res.Command, string(res.Status), time.Since(start))
	}

	if res.Exited {
		m.remove(e, ReasonExit)
	}
	return res, nil
}

// Navigate moves through a session's history and returns the new input buffer
func (m *Manager) Navigate(sessionID string, dir Direction) (string, error) {
	e, err := m.load(sessionID)
	if err != nil {
		return "", err
	}
	e.touch(m.now())

	switch dir {
	case DirectionPrevious:
		return e.session.HistoryPrevious(), nil
	case DirectionNext:
		return e.session.HistoryNext(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
}

// Output returns log lines newer than since
func (m *Manager) Output(sessionID string, since uint64) ([]shell.Line, error) {
	e, err := m.load(sessionID)
	if err != nil {
		return nil, err
	}
	return e.session.Log().Since(since), nil
}

// Entries lists a path relative to the session's current directory
func (m *Manager) Entries(sessionID, path string) ([]vfs.Entry, error) {
	e, err := m.load(sessionID)
	if err != nil {
		return nil, err
	}
	return e.session.FS().Entries(path, e.session.Cwd())
}

// GetSession returns session info
func (m *Manager) GetSession(sessionID string) (*SessionInfo, error) {
	e, err := m.load(sessionID)
	if err != nil {
		return nil, err
	}
	return m.info(e), nil
}

// ListSessions returns all sessions, oldest first
func (m *Manager) ListSessions() []SessionInfo {
	sessions := make([]SessionInfo, 0, m.count.Load())
	m.sessions.Range(func(key, value interface{}) bool {
		sessions = append(sessions, *m.info(value.(*entry)))
		return true
	})

	// ULIDs sort by creation time
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	return int(m.count.Load())
}

// Kill closes a session and forgets it
func (m *Manager) Kill(sessionID string) error {
	e, err := m.load(sessionID)
	if err != nil {
		return err
	}
	m.remove(e, ReasonKilled)
	return nil
}

// Close kills every session
func (m *Manager) Close() {
	m.sessions.Range(func(key, value interface{}) bool {
		m.remove(value.(*entry), ReasonShutdown)
		return true
	})
}

// StartReaper kills sessions idle for longer than the idle timeout, checking
// every interval until ctx is done. The returned channel is closed when the
// loop exits.
func (m *Manager) StartReaper(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if m.cfg.IdleTimeout <= 0 || interval <= 0 {
		close(done)
		return done
	}

	m.logger.Info("Session reaper started",
		zap.Duration("interval", interval),
		zap.Duration("idle_timeout", m.cfg.IdleTimeout))

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Reap()
			case <-ctx.Done():
				m.logger.Info("Session reaper stopping")
				return
			}
		}
	}()
	return done
}

// Reap kills idle sessions once and returns how many were removed
func (m *Manager) Reap() int {
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}

	cutoff := m.now().Add(-m.cfg.IdleTimeout)
	reaped := 0
	m.sessions.Range(func(key, value interface{}) bool {
		e := value.(*entry)
		if e.idleSince().Before(cutoff) {
			if m.remove(e, ReasonIdle) {
				reaped++
			}
		}
		return true
	})

	if reaped > 0 {
		m.logger.Info("Reaped idle sessions", zap.Int("count", reaped))
	}
	return reaped
}

func (m *Manager) load(sessionID string) (*entry, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return value.(*entry), nil
}

// remove reports whether this call removed the session
func (m *Manager) remove(e *entry, reason string) bool {
	if _, loaded := m.sessions.LoadAndDelete(e.id); !loaded {
		return false
	}
	e.session.Close()
	m.count.Add(-1)
	m.recorder.SessionClosed(reason)
	m.logger.Info("Session closed",
		zap.String("session_id", e.id),
		zap.String("reason", reason))
	return true
}

func (m *Manager) info(e *entry) *SessionInfo {
	return &SessionInfo{
		ID:         e.id,
		User:       m.doc.User,
		Cwd:        e.session.Cwd(),
		Prompt:     e.session.Prompt(),
		SharedFS:   m.shared != nil,
		History:    len(e.session.History()),
		CreatedAt:  e.createdAt,
		LastActive: e.idleSince(),
	}
}
