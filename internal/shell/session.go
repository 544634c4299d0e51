package shell

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jai-git4208/portfolio-os/backend/internal/shared/paths"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/types"
	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

// DefaultStepDelay spaces the lines of simulated long-running commands
const DefaultStepDelay = 500 * time.Millisecond

// Status summarizes how a line was handled
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusUnknown Status = "unknown"
	StatusEmpty   Status = "empty"
	StatusClosed  Status = "closed"
)

// Handler implements one command. Returning nil lines and a nil error
// produces no output. Errors are rendered as text by the session.
type Handler func(s *Session, args []string) ([]string, error)

// Environment is the identity a session presents
type Environment struct {
	User     string
	Hostname string
	Home     string
	Version  string
	Profile  types.Profile
}

// Options tune a session. Zero values select defaults.
type Options struct {
	StepDelay time.Duration
	Now       func() time.Time
	Rand      *rand.Rand
	Logger    *zap.Logger
}

// Result describes the effect of one Execute call
type Result struct {
	Command string `json:"command"`
	Status  Status `json:"status"`
	Lines   []Line `json:"lines"`
	Cwd     string `json:"cwd"`
	Prompt  string `json:"prompt"`
	Cleared bool   `json:"cleared,omitempty"`
	Exited  bool   `json:"exited,omitempty"`
}

// Output returns the text of the output lines, without the echoed input
func (r Result) Output() []string {
	var out []string
	for _, line := range r.Lines {
		if line.Kind == LineOutput {
			out = append(out, line.Text)
		}
	}
	return out
}

// Session is one terminal: current directory, history, input buffer,
// output log and command table, bound to a filesystem that may be shared
// with other sessions.
type Session struct {
	mu sync.Mutex

	fs        *vfs.FileSystem
	env       Environment
	opts      Options
	logger    *zap.Logger
	log       *Log
	scheduler *Scheduler

	commands map[string]Command
	order    []string

	cwd     string
	history []string
	browse  int
	input   string
	started time.Time
	closed  bool

	// set by handlers during one Execute
	cleared bool
	exited  bool
}

// NewSession creates a session at the home directory and writes the welcome banner
func NewSession(fs *vfs.FileSystem, env Environment, opts Options) *Session {
	if opts.StepDelay <= 0 {
		opts.StepDelay = DefaultStepDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if env.Home == "" {
		env.Home = fs.Home()
	}
	if env.User == "" {
		env.User = "guest"
	}

	s := &Session{
		fs:        fs,
		env:       env,
		opts:      opts,
		logger:    opts.Logger,
		log:       NewLog(opts.Now),
		scheduler: NewScheduler(context.Background()),
		commands:  make(map[string]Command),
		browse:    -1,
		started:   opts.Now(),
	}
	for _, cmd := range builtins() {
		s.Register(cmd)
	}

	s.cwd = s.homeOrRoot()
	s.welcome()
	return s
}

// Register adds or replaces a command. Names are matched case-insensitively
// unless they contain spaces, in which case the whole line must match.
func (s *Session) Register(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.commands[cmd.Name]; !exists {
		s.order = append(s.order, cmd.Name)
	}
	s.commands[cmd.Name] = cmd
}

// Execute runs one input line to completion. Delayed output scheduled by
// the command is appended to the log later.
func (s *Session) Execute(line string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{Status: StatusClosed}
	}

	s.input = ""
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return s.result(Result{Status: StatusEmpty})
	}

	echo := s.log.Append(LineInput, fmt.Sprintf("%s $ %s", s.displayPath(), trimmed))
	s.history = append(s.history, trimmed)
	s.browse = -1
	s.cleared, s.exited = false, false

	name, out, status := s.dispatch(trimmed)
	s.logger.Debug("Command executed",
		zap.String("command", name),
		zap.String("status", string(status)),
		zap.String("cwd", s.cwd))

	res := Result{Command: name, Status: status, Cleared: s.cleared, Exited: s.exited}
	if !s.cleared {
		res.Lines = append(res.Lines, echo...)
	}
	res.Lines = append(res.Lines, s.log.Append(LineOutput, out...)...)
	return s.result(res)
}

func (s *Session) result(res Result) Result {
	res.Cwd = s.cwd
	res.Prompt = s.prompt()
	return res
}

// dispatch expects the caller to hold the lock
func (s *Session) dispatch(line string) (string, []string, Status) {
	if cmd, ok := s.commands[line]; ok {
		out, err := s.invoke(cmd, nil)
		return cmd.Name, render(out, err), statusOf(err)
	}

	fields, redirect, err := parseRedirect(strings.Fields(line))
	if err != nil {
		return "", render(nil, err), StatusError
	}
	if len(fields) == 0 {
		err := s.redirect(redirect, nil)
		return "", render(nil, err), statusOf(err)
	}

	name := strings.ToLower(fields[0])
	cmd, ok := s.lookup(name)
	if !ok {
		return name, []string{fmt.Sprintf("Command not found: %s. Type \"help\" for available commands.", name)}, StatusUnknown
	}

	out, err := s.invoke(cmd, fields[1:])
	if redirect != nil {
		if werr := s.redirect(redirect, out); werr != nil {
			return name, render(nil, errors.Join(err, werr)), StatusError
		}
		out = nil
	}
	return name, render(out, err), statusOf(err)
}

// lookup finds a single-word command
func (s *Session) lookup(name string) (Command, bool) {
	cmd, ok := s.commands[name]
	if !ok || strings.Contains(name, " ") {
		return Command{}, false
	}
	return cmd, true
}

func (s *Session) invoke(cmd Command, args []string) (out []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Command panicked",
				zap.String("command", cmd.Name),
				zap.Any("panic", r))
			out, err = nil, fmt.Errorf("%s: internal error", cmd.Name)
		}
	}()
	return cmd.Handler(s, args)
}

func render(out []string, err error) []string {
	if err == nil {
		return out
	}
	return append(out, strings.Split(err.Error(), "\n")...)
}

func statusOf(err error) Status {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

// HistoryPrevious moves one entry back in history and returns the new input buffer
func (s *Session) HistoryPrevious() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return s.input
	}
	if s.browse < len(s.history)-1 {
		s.browse++
	}
	s.input = s.history[len(s.history)-1-s.browse]
	return s.input
}

// HistoryNext moves one entry forward in history and returns the new input buffer.
// Moving past the newest entry stops browsing and clears the buffer.
func (s *Session) HistoryNext() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browse < 0 {
		return s.input
	}
	s.browse--
	if s.browse < 0 {
		s.input = ""
		return s.input
	}
	s.input = s.history[len(s.history)-1-s.browse]
	return s.input
}

// Input returns the current input buffer
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the input buffer
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// History returns a copy of the entered lines, oldest first
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Cwd returns the absolute current directory
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// DisplayPath returns the current directory with the home directory shown as ~
func (s *Session) DisplayPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayPath()
}

// Prompt returns "<user>@<host>:<path> $"
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt()
}

// Log returns the session's output log
func (s *Session) Log() *Log {
	return s.log
}

// FS returns the filesystem the session operates on
func (s *Session) FS() *vfs.FileSystem {
	return s.fs
}

// Env returns the session's environment
func (s *Session) Env() Environment {
	return s.env
}

// Pending returns the number of delayed callbacks not yet run
func (s *Session) Pending() int {
	return s.scheduler.Pending()
}

// Closed reports whether the session has been closed
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels delayed output and closes the log. It is safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.scheduler.Close()
	s.log.Close()
}

func (s *Session) displayPath() string {
	return paths.Abbreviate(s.cwd, s.env.Home)
}

func (s *Session) prompt() string {
	return fmt.Sprintf("%s@%s:%s $", s.env.User, s.env.Hostname, s.displayPath())
}

func (s *Session) homeOrRoot() string {
	res, err := s.fs.Resolve(s.env.Home, paths.Root)
	if err != nil || !res.Node.IsDir() {
		return paths.Root
	}
	return res.Path
}

func (s *Session) welcome() {
	s.log.Append(LineOutput,
		fmt.Sprintf("Welcome to %s's Portfolio Terminal v%s", s.env.Profile.Name, s.env.Version),
		`Type "help" for available commands`,
		"",
	)
}

// reboot resets the session to its freshly created state. The filesystem
// is left alone since other sessions may share it.
func (s *Session) reboot() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.history = nil
	s.browse = -1
	s.input = ""
	s.cwd = s.homeOrRoot()
	s.log.Clear()
	s.welcome()
}

// emit appends delayed output; used by scheduled callbacks
func (s *Session) emit(lines ...string) {
	s.log.Append(LineOutput, lines...)
}
